package registry

import (
	"context"
	"errors"

	"accountsvc/internal/models"
)

type Lookup interface {
	FindByID(ctx context.Context, clientID string) (models.ClientProfile, error)
}

type Eligibility struct {
	Eligible bool
	Reason   string
	Profile  *models.ClientProfile
}

// Gate fails closed: a client that cannot be verified is not eligible.
type Gate struct {
	lookup Lookup
}

func NewGate(lookup Lookup) *Gate {
	return &Gate{lookup: lookup}
}

func (g *Gate) CheckEligible(ctx context.Context, clientID string) Eligibility {
	profile, err := g.lookup.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return Eligibility{Reason: "client " + clientID + " does not exist"}
		}
		return Eligibility{Reason: "could not verify client " + clientID}
	}
	if !profile.IsActive() {
		return Eligibility{Reason: "client " + clientID + " is not active", Profile: &profile}
	}
	return Eligibility{Eligible: true, Profile: &profile}
}
