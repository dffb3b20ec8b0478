package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrForbidden           = errors.New("forbidden access")
	ErrInvalidID           = errors.New("invalid id")
	ErrUserNotFound        = errors.New("user not found")
	ErrPlantNotFound       = errors.New("plant not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyRequested    = errors.New("you have already requested, wait for some time")
	ErrOrderDelivered      = errors.New("can not cancel once the product is delivered")
	ErrDuplicateRequest    = errors.New("request already processed")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	ErrPaymentMismatch     = errors.New("payment amount does not match order")
	ErrPaymentReused       = errors.New("payment already used for another order")
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrStorageDisabled     = errors.New("image storage is not configured")
)
