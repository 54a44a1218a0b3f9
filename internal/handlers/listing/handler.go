package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	"stayhub/internal/domains/listing/model/dto"
	"stayhub/internal/domains/listing/service"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/validator"
	"stayhub/transport/http/response"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/listings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateListing)
		routerGroup.Get("/", handler.GetListings)
		routerGroup.Get("/available", handler.GetAvailableListings)
		routerGroup.Get("/my_listings", handler.GetMyListings)
		routerGroup.Get("/{id}", handler.GetListingByID)
		routerGroup.Put("/{id}", handler.UpdateListing)
		routerGroup.Patch("/{id}", handler.UpdateListing)
		routerGroup.Delete("/{id}", handler.DeleteListing)
		routerGroup.Post("/{id}/images", handler.UploadListingImage)
	})
}

// CreateListing handles the creation of a new listing.
// @Summary Create a new listing
// @Description Create a new property listing owned by the authenticated user.
// @Tags Listing
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Create Listing Request"
// @Success 201 {object} response.Data[dto.ListingResponse] "Listing created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [post]
// @Security BearerAuth
func (handler *Handler) CreateListing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateListing")
	defer scope.End()

	req := dto.CreateListingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	hostID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, req, hostID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create listing")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listing created successfully by user " + hostID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetListings retrieves all listings based on query parameters.
// @Summary Get all listings
// @Description Retrieve all listings with optional filtering, search and pagination.
// @Tags Listing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "Filter by city"
// @Param state query string false "Filter by state"
// @Param country query string false "Filter by country"
// @Param property_type query string false "Filter by property type (house, apartment, room)"
// @Param min_price query number false "Minimum price per night"
// @Param max_price query number false "Maximum price per night"
// @Param bedrooms query integer false "Minimum number of bedrooms"
// @Param max_guests query integer false "Minimum guest capacity"
// @Param is_available query boolean false "Filter by availability"
// @Param search query string false "Search in title, description and location fields"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "List of listings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings [get]
func (handler *Handler) GetListings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListings")
	defer scope.End()

	req := dto.GetListingsRequest{}
	req.FromRequest(request)

	res, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailableListings retrieves listings currently open for booking.
// @Summary Get available listings
// @Description Retrieve all listings that are currently available for booking.
// @Tags Listing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "List of available listings"
// @Failure 500 {object} response.Error
// @Router /v1/listings/available [get]
func (handler *Handler) GetAvailableListings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableListings")
	defer scope.End()

	available := true

	req := dto.GetListingsRequest{}
	req.FromRequest(request)
	req.IsAvailable = &available

	res, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available listings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyListings retrieves the authenticated user's listings.
// @Summary Get my listings
// @Description Retrieve all listings hosted by the currently authenticated user.
// @Tags Listing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetListingsResponse] "List of the user's listings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/my_listings [get]
// @Security BearerAuth
func (handler *Handler) GetMyListings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyListings")
	defer scope.End()

	hostID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.GetListingsRequest{}
	req.FromRequest(request)
	req.HostID = hostID

	res, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my listings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetListingByID retrieves a single listing.
// @Summary Get a listing
// @Description Retrieve a single listing by its ID.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Data[dto.ListingResponse] "Listing details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/listings/{id} [get]
func (handler *Handler) GetListingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetListingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get listing")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateListing updates an existing listing.
// @Summary Update a listing
// @Description Update a listing. Only the host that owns it may update it.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body dto.UpdateListingRequest true "Update Listing Request"
// @Success 200 {object} response.Data[dto.ListingResponse] "Listing updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateListing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateListing")
	defer scope.End()

	req := dto.UpdateListingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	res, err := handler.service.Update(ctx, id, req, userID, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update listing")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listing updated successfully by user " + userID)

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteListing removes a listing.
// @Summary Delete a listing
// @Description Delete a listing. Only the host that owns it may delete it.
// @Tags Listing
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.Message "Listing deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteListing(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteListing")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if err := handler.service.Delete(ctx, id, userID, role); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete listing")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listing deleted successfully by user " + userID)

	response.WithMessage(writer, http.StatusOK, "Listing deleted successfully")
}

// UploadListingImage attaches an image to a listing.
// @Summary Upload a listing image
// @Description Upload an image for a listing. Only the host that owns it may upload images.
// @Tags Listing
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Listing ID"
// @Param image formData file true "Listing image"
// @Success 200 {object} response.Data[dto.ListingResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/listings/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadListingImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadListingImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequestFromString("Invalid multipart form"))

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("missing image file")

		response.WithError(writer, failure.BadRequestFromString("Image file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate image")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	res, err := handler.service.UploadImage(ctx, id, req, userID, role)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload listing image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Listing image uploaded successfully by user " + userID)

	response.WithJSON(writer, http.StatusOK, res)
}
