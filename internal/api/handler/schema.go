package handler

import "github.com/plantnet/plantnet-server/internal/core/domain"

type sessionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type upsertUserRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer seller admin"`
}

type roleResponse struct {
	Role *string `json:"role"`
}

type insertedResponse struct {
	InsertedID string `json:"insertedId"`
}

type deletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type adjustQuantityRequest struct {
	QuantityToUpdate int                      `json:"quantityToUpdate"`
	Status           domain.QuantityDirection `json:"status"`
}

type imageResponse struct {
	URL string `json:"url"`
}

type paymentIntentRequest struct {
	PlantID  string `json:"plantId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type webhookResponse struct {
	Received bool `json:"received"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
