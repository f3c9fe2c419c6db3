// Package dto defines the JSON shapes returned by both transports.
package dto

import (
	"time"

	"github.com/saloonbook/saloon-server/internal/model"
)

// Account is the public view of an account. Credentials never appear in it.
type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	Address    string    `json:"address"`
	Gender     string    `json:"gender"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Salon struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Address   Location  `json:"address"`
	Services  []string  `json:"services"`
	Pictures  []string  `json:"pictures"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Registered is the response to a successful registration.
type Registered struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// Token is the response to a successful login.
type Token struct {
	Token string `json:"token"`
}

type SalonList struct {
	Saloons []Salon `json:"saloons"`
}

// PictureAdded is the response to a picture upload.
type PictureAdded struct {
	Key   string `json:"key"`
	Salon Salon  `json:"salon"`
}

// Problem is an error response body in the style of RFC 7807.
type Problem struct {
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func FromAccount(a model.Account) Account {
	return Account{
		ID:         a.ID.String(),
		Email:      a.Email,
		Name:       a.Profile.Name,
		Mobile:     a.Profile.Mobile,
		Address:    a.Profile.Address,
		Gender:     a.Profile.Gender,
		ProfilePic: a.Profile.ProfilePic,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func FromSalon(s model.Salon) Salon {
	services := s.Services
	if services == nil {
		services = []string{}
	}
	pictures := s.Pictures
	if pictures == nil {
		pictures = []string{}
	}
	return Salon{
		ID:        s.ID.String(),
		OwnerID:   s.OwnerID.String(),
		Name:      s.Name,
		Address:   Location{Lat: s.Location.Lat, Lng: s.Location.Lng},
		Services:  services,
		Pictures:  pictures,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromSalons converts a list, keeping an empty list non-nil.
func FromSalons(salons []model.Salon) SalonList {
	out := SalonList{Saloons: make([]Salon, 0, len(salons))}
	for _, s := range salons {
		out.Saloons = append(out.Saloons, FromSalon(s))
	}
	return out
}
