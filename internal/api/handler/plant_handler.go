package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

// maxImageBytes caps plant image uploads.
const maxImageBytes = 5 << 20

type PlantHandler struct {
	service ports.PlantService
	images  ports.ImageStore
}

// NewPlantHandler builds the handler. images may be nil when object storage
// is not configured; uploads then fail with 503.
func NewPlantHandler(service ports.PlantService, images ports.ImageStore) *PlantHandler {
	return &PlantHandler{service: service, images: images}
}

// Create stores a plant listing as submitted.
//
// @Summary      Create plant
// @Tags         plants
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Plant  true  "Plant"
// @Success      200   {object}  insertedResponse
// @Failure      403   {object}  map[string]string
// @Security     CookieAuth
// @Router       /plants [post]
func (h *PlantHandler) Create(c echo.Context) error {
	var p domain.Plant
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Create(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertedResponse{InsertedID: id})
}

// List returns the public catalogue page.
//
// @Summary      List plants
// @Tags         plants
// @Produce      json
// @Success      200  {array}  domain.Plant
// @Router       /plants [get]
func (h *PlantHandler) List(c echo.Context) error {
	plants, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plants)
}

// Get returns one plant.
//
// @Summary      Get plant
// @Tags         plants
// @Produce      json
// @Param        id   path      string  true  "Plant id"
// @Success      200  {object}  domain.Plant
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /plants/{id} [get]
func (h *PlantHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListMine returns the caller's own inventory.
//
// @Summary      List seller inventory
// @Tags         plants
// @Produce      json
// @Success      200  {array}  domain.Plant
// @Security     CookieAuth
// @Router       /plants/seller [get]
func (h *PlantHandler) ListMine(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	plants, err := h.service.ListBySeller(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plants)
}

// Delete removes a plant listing.
//
// @Summary      Delete plant
// @Tags         plants
// @Produce      json
// @Param        id   path      string  true  "Plant id"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  map[string]string
// @Security     CookieAuth
// @Router       /plants/{id} [delete]
func (h *PlantHandler) Delete(c echo.Context) error {
	n, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: n})
}

// AdjustQuantity atomically increments or decrements stock.
//
// @Summary      Adjust plant quantity
// @Tags         plants
// @Accept       json
// @Produce      json
// @Param        id               path      string                 true   "Plant id"
// @Param        Idempotency-Key  header    string                 false  "Replay protection key"
// @Param        body             body      adjustQuantityRequest  true   "Adjustment"
// @Success      200              {object}  domain.UpdateResult
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Security     CookieAuth
// @Router       /plants/quantity/{id} [patch]
func (h *PlantHandler) AdjustQuantity(c echo.Context) error {
	var req adjustQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.AdjustQuantity(c.Request().Context(), ports.AdjustQuantityInput{
		PlantID:        c.Param("id"),
		Quantity:       req.QuantityToUpdate,
		Direction:      req.Status,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// UploadImage stores a plant photo and returns its public URL.
//
// @Summary      Upload plant image
// @Tags         plants
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file"
// @Success      201    {object}  imageResponse
// @Failure      400    {object}  map[string]string
// @Failure      503    {object}  map[string]string
// @Security     CookieAuth
// @Router       /plants/image [post]
func (h *PlantHandler) UploadImage(c echo.Context) error {
	if h.images == nil {
		return domain.ErrStorageDisabled
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}
	if fh.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := h.images.Upload(c.Request().Context(), fh.Filename, fh.Header.Get(echo.HeaderContentType), f, fh.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, imageResponse{URL: url})
}
