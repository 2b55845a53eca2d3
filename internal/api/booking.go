package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

// GetSlots получает открытые слоты тренера в порядке, заданном бэкендом
func (c *Client) GetSlots(ctx context.Context, trainerID int64) ([]model.Slot, error) {
	var slots []model.Slot
	err := c.do(ctx, request{method: http.MethodGet, path: idPath("booking/trainer/%d/slots", trainerID)}, &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// SubmitBooking бронирует слот. Решение о доступности слота принимает только бэкенд,
// проигранная гонка приходит как *Error
func (c *Client) SubmitBooking(ctx context.Context, token string, traineeUserID, slotID int64) (*model.Booking, error) {
	query := url.Values{}
	query.Set("traineeUserId", strconv.FormatInt(traineeUserID, 10))
	query.Set("slotId", strconv.FormatInt(slotID, 10))

	var booking model.Booking
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "booking/submit",
		query:  query,
		token:  token,
	}, &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// AddAvailability добавляет слот доступности тренеру
func (c *Client) AddAvailability(ctx context.Context, token string, trainerID int64, slot model.AvailabilityRequest) (*model.Slot, error) {
	var created model.Slot
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   idPath("booking/trainer/%d/availability", trainerID),
		token:  token,
		body:   slot,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
