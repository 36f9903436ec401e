package api

import (
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

func accountView(account *models.Account) types.AccountView {
	return types.AccountView{
		ID:        account.ID,
		Email:     account.Email,
		Role:      string(account.Role),
		ProfileID: account.ProfileID,
		CreatedAt: account.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func accountViews(accounts []models.Account) []types.AccountView {
	views := make([]types.AccountView, 0, len(accounts))
	for i := range accounts {
		views = append(views, accountView(&accounts[i]))
	}
	return views
}
