// Package entitlement is the boundary to the subscription provider. The
// core never consults it; only route middleware does, gating the pro-only
// surfaces (strength paths, stats). Purchases and restores happen in the
// mobile clients against the provider directly.
package entitlement

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checker answers whether a user currently holds the pro entitlement.
type Checker interface {
	HasPro(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// staticChecker is a config-driven Checker for self-hosted and development
// deployments: either everyone is pro, or a fixed allow-list is.
type staticChecker struct {
	allPro bool
	pro    map[string]struct{}
}

// NewStaticChecker builds a Checker from configuration. With allPro set the
// user list is ignored.
func NewStaticChecker(allPro bool, proUserIDs []string) Checker {
	pro := make(map[string]struct{}, len(proUserIDs))
	for _, id := range proUserIDs {
		pro[id] = struct{}{}
	}
	return &staticChecker{allPro: allPro, pro: pro}
}

func (c *staticChecker) HasPro(_ context.Context, userID primitive.ObjectID) (bool, error) {
	if c.allPro {
		return true, nil
	}
	_, ok := c.pro[userID.Hex()]
	return ok, nil
}
