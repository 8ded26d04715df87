package models

// Profile: данные пациента, которыми владеет внешний сервис идентификации.
type Profile struct {
	ID          string `gorm:"primaryKey" json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `gorm:"column:is_admin" json:"isAdmin"`
}

// Contact возвращает номер телефона для уведомлений, если он указан.
func (p *Profile) Contact() (string, bool) {
	if p == nil || p.PhoneNumber == "" {
		return "", false
	}
	return p.PhoneNumber, true
}
