package governance

import (
	"context"
	"fmt"

	"github.com/stake-plus/treasury-gov/src/api/types"
	"go.uber.org/zap"
)

// Voter registry operations. Mutations require an admin caller and are
// visible to subsequent votes only; past vote records keep the weight they
// captured when cast.

// Register adds a voter with the given weight. The identity must not exist
// yet, deactivated or not, so historical votes stay attributable to one
// registration.
func (s *Service) Register(ctx context.Context, caller, addr string, weight int64) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if weight <= 0 {
		weight = 1
	}
	existing, err := s.store.GetVoter(addr)
	if err != nil {
		return fmt.Errorf("load voter: %w", err)
	}
	if existing != nil {
		return ErrAlreadyRegistered
	}
	v := &types.Voter{
		Address:      addr,
		Weight:       weight,
		Active:       true,
		RegisteredAt: s.clock.Now(),
	}
	if err := s.store.SaveVoter(v); err != nil {
		return fmt.Errorf("save voter: %w", err)
	}
	s.publish(ctx, "voter.registered", map[string]interface{}{
		"address": addr,
		"weight":  weight,
	})
	s.log.Info("voter registered", zap.String("address", addr), zap.Int64("weight", weight))
	return nil
}

// Deactivate flags a voter ineligible. The row is never deleted.
func (s *Service) Deactivate(ctx context.Context, caller, addr string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	v, err := s.store.GetVoter(addr)
	if err != nil {
		return fmt.Errorf("load voter: %w", err)
	}
	if v == nil {
		return ErrNotRegistered
	}
	v.Active = false
	if err := s.store.SaveVoter(v); err != nil {
		return fmt.Errorf("save voter: %w", err)
	}
	s.publish(ctx, "voter.deactivated", map[string]interface{}{"address": addr})
	s.log.Info("voter deactivated", zap.String("address", addr))
	return nil
}

// WeightOf returns the current weight of an active voter.
func (s *Service) WeightOf(addr string) (int64, error) {
	v, err := s.store.GetVoter(addr)
	if err != nil {
		return 0, fmt.Errorf("load voter: %w", err)
	}
	if v == nil || !v.Active {
		return 0, ErrNotRegistered
	}
	return v.Weight, nil
}

// IsAdmin reports whether the address is an active voter with the admin
// flag set.
func (s *Service) IsAdmin(addr string) bool {
	v, err := s.store.GetVoter(addr)
	if err != nil {
		return false
	}
	return v != nil && v.Active && v.IsAdmin
}

func (s *Service) requireAdmin(caller string) error {
	if !s.IsAdmin(caller) {
		return ErrUnauthorized
	}
	return nil
}
