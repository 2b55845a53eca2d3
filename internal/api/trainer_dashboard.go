package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"golang.org/x/sync/errgroup"
)

// GetTrainerProfile профиль текущего тренера
func (c *Client) GetTrainerProfile(ctx context.Context, token string) (*model.TrainerProfile, error) {
	var profile model.TrainerProfile
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/profile", token: token}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateTrainerProfile меняет тарифы и возвращает актуальный профиль
func (c *Client) UpdateTrainerProfile(ctx context.Context, token string, update model.RateUpdate) (*model.TrainerProfile, error) {
	var profile model.TrainerProfile
	err := c.do(ctx, request{method: http.MethodPut, path: "trainer/dashboard/profile", token: token, body: update}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetTrainerBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/bookings", token: token}, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetCurrentMonthEarnings(ctx context.Context, token string) (float64, error) {
	var amount float64
	err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/earnings/current-month", token: token}, &amount)
	return amount, err
}

func (c *Client) GetTotalEarnings(ctx context.Context, token string) (float64, error) {
	var amount float64
	err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/earnings/total", token: token}, &amount)
	return amount, err
}

func (c *Client) GetMonthlyEarnings(ctx context.Context, token string) (model.MonthlyAmounts, error) {
	amounts := model.MonthlyAmounts{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/earnings/monthly", token: token}, &amounts); err != nil {
		return nil, err
	}
	return amounts, nil
}

// GetTrainerAvailability все слоты текущего тренера
func (c *Client) GetTrainerAvailability(ctx context.Context, token string) ([]model.Slot, error) {
	var slots []model.Slot
	if err := c.do(ctx, request{method: http.MethodGet, path: "trainer/dashboard/availability", token: token}, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// DeleteAvailability удаляет слот (бэкенд разрешает только свободные)
func (c *Client) DeleteAvailability(ctx context.Context, token string, availabilityID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   idPath("trainer/dashboard/availability/%d", availabilityID),
		token:  token,
	}, nil)
}

// GetTrainerDashboardData загружает кабинет тренера шестью параллельными запросами.
// Результат появляется только когда завершились все; ошибка любого - ошибка целиком
func (c *Client) GetTrainerDashboardData(ctx context.Context, token string) (*model.TrainerDashboard, error) {
	var d model.TrainerDashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Profile, err = c.GetTrainerProfile(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.Bookings, err = c.GetTrainerBookings(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.CurrentMonthEarnings, err = c.GetCurrentMonthEarnings(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.TotalEarnings, err = c.GetTotalEarnings(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.MonthlyEarnings, err = c.GetMonthlyEarnings(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		d.Availability, err = c.GetTrainerAvailability(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load trainer dashboard: %w", err)
	}
	return &d, nil
}
