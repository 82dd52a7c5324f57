package debts

import (
	"context"

	"vehicledebts/pkg/detran"
)

type Repository struct {
	Client *detran.Client
}

func NewDebtsRepository(client *detran.Client) *Repository {
	return &Repository{Client: client}
}

func (r *Repository) Fetch(ctx context.Context, licensePlate, renavam string, query Query) (map[string]any, error) {
	return r.Client.Consult(ctx, string(query), licensePlate, renavam)
}
