package logic

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/database"
	"github.com/rakshit-singh2/fundraising-backend/internal/keystore"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", LogLevel: "silent"})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testAddress 生成 42 位地址，n 用于区分
func testAddress(n int) string {
	hex := fmt.Sprintf("%x", n)
	return "0x" + strings.Repeat("0", 40-len(hex)) + hex
}

type fixture struct {
	db          *gorm.DB
	projects    *ProjectLogic
	investments *InvestmentLogic
	market      *MarketLogic
	returns     *ReturnsLogic
	tokens      *TokenLogic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	return &fixture{
		db:          db,
		projects:    NewProjectLogic(db, keystore.NewGenerator()),
		investments: NewInvestmentLogic(db),
		market:      NewMarketLogic(db),
		returns:     NewReturnsLogic(db, DefaultReturnsPrecision),
		tokens:      NewTokenLogic(db),
	}
}

func (f *fixture) createProject(t *testing.T, name string, n int, target, supply string) *model.ProjectModel {
	t.Helper()
	p, err := f.projects.CreateProject(context.Background(), CreateProjectParams{
		Name:            name,
		TargetAmount:    dec(target),
		TokenSupply:     dec(supply),
		ReceiverAddress: testAddress(n),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) invest(t *testing.T, projectId, investor, given, actual string) *model.InvestmentModel {
	t.Helper()
	inv, err := f.investments.CreateInvestment(context.Background(), CreateInvestmentParams{
		InvestorAddress: investor,
		GivenAmount:     dec(given),
		ActualAmount:    dec(actual),
		ProjectId:       projectId,
	})
	require.NoError(t, err)
	return inv
}
