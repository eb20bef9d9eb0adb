package domain

import "time"

// Profile is a professional's account. The slug addresses the public booking
// page; CompanyName, when set, is what clients see there.
type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Slug          string    `json:"slug"`
	CompanyName   *string   `json:"company_name"`
	WhatsAppPhone *string   `json:"whatsapp_phone"`
	AvatarURL     *string   `json:"avatar_url"`
	PasswordHash  string    `json:"-"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DisplayName is the name shown on the public page: company name first,
// personal name as fallback.
func (p *Profile) DisplayName() string {
	if p.CompanyName != nil && *p.CompanyName != "" {
		return *p.CompanyName
	}
	return p.Name
}

type UpdateProfileDTO struct {
	Name          *string `json:"name"`
	CompanyName   *string `json:"company_name"`
	WhatsAppPhone *string `json:"whatsapp_phone"`
	Slug          *string `json:"slug"`
}

// PublicProfile is the subset of Profile exposed on the public agenda page.
type PublicProfile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	CompanyName *string `json:"company_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// PublicPage is everything the public agenda needs on first load: the
// professional and their active services. Availability is fetched separately
// and never cached with this payload.
type PublicPage struct {
	Profile  PublicProfile `json:"profile"`
	Services []Service     `json:"services"`
}

func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		CompanyName: p.CompanyName,
		AvatarURL:   p.AvatarURL,
	}
}
