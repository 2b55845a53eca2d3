package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"golang.org/x/sync/errgroup"
)

func (c *Client) GetTraineeProfile(ctx context.Context, token string) (*model.TraineeProfile, error) {
	var profile model.TraineeProfile
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainee/dashboard/profile", token: token}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetTraineeSessions(ctx context.Context, token string) ([]model.Booking, error) {
	var sessions []model.Booking
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainee/dashboard/sessions", token: token}, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) GetTotalSpent(ctx context.Context, token string) (float64, error) {
	var amount float64
	err := c.do(ctx, request{method: http.MethodGet, path: "trainee/dashboard/total-spent", token: token}, &amount)
	return amount, err
}

func (c *Client) GetMonthlySpending(ctx context.Context, token string) (model.MonthlyAmounts, error) {
	amounts := model.MonthlyAmounts{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainee/dashboard/monthly-spending", token: token}, &amounts); err != nil {
		return nil, err
	}
	return amounts, nil
}

// GetTraineeDashboardData загружает кабинет ученика четырьмя параллельными запросами,
// без частичного результата
func (c *Client) GetTraineeDashboardData(ctx context.Context, token string) (*model.TraineeDashboard, error) {
	var d model.TraineeDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Profile, err = c.GetTraineeProfile(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.Sessions, err = c.GetTraineeSessions(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.TotalSpent, err = c.GetTotalSpent(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.MonthlySpending, err = c.GetMonthlySpending(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load trainee dashboard: %w", err)
	}
	return &d, nil
}
