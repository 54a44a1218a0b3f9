package dto

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"stayhub/internal/domains/listing/model"
	userDto "stayhub/internal/domains/user/model/dto"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type CreateListingRequest struct {
	Title         string   `json:"title"           validate:"required,max=200"`
	Description   string   `json:"description"     validate:"required"`
	Address       string   `json:"address"         validate:"required,max=255"`
	City          string   `json:"city"            validate:"required,max=100"`
	State         string   `json:"state"           validate:"required,max=100"`
	Country       string   `json:"country"         validate:"required,max=100"`
	ZipCode       string   `json:"zip_code"        validate:"required,max=20"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	PropertyType  string   `json:"property_type"   validate:"required,oneof=house apartment room"`
	Bedrooms      int      `json:"bedrooms"        validate:"required,gte=1"`
	Bathrooms     int      `json:"bathrooms"       validate:"required,gte=1"`
	MaxGuests     int      `json:"max_guests"      validate:"required,gte=1"`
	Amenities     []string `json:"amenities"       validate:"omitempty,dive,max=100"`
	IsAvailable   *bool    `json:"is_available"    validate:"omitempty"`
}

func (r *CreateListingRequest) ToModel(hostID string) model.Listing {
	now := timezone.Now()

	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return model.Listing{
		ID:            uuid.NewString(),
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Country:       r.Country,
		ZipCode:       r.ZipCode,
		PricePerNight: r.PricePerNight,
		PropertyType:  r.PropertyType,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		MaxGuests:     r.MaxGuests,
		Amenities:     pq.StringArray(r.Amenities),
		Images:        pq.StringArray{},
		IsAvailable:   isAvailable,
		HostID:        hostID,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateListingRequest carries partial updates. Only non-zero fields are
// written, keyed by their db tags. Pointer fields with value constraints
// use omitnil so that present-but-empty values still hit them.
type UpdateListingRequest struct {
	Title         *string  `db:"title"           json:"title"           validate:"omitempty,max=200"`
	Description   *string  `db:"description"     json:"description"     validate:"omitempty"`
	Address       *string  `db:"address"         json:"address"         validate:"omitempty,max=255"`
	City          *string  `db:"city"            json:"city"            validate:"omitempty,max=100"`
	State         *string  `db:"state"           json:"state"           validate:"omitempty,max=100"`
	Country       *string  `db:"country"         json:"country"         validate:"omitempty,max=100"`
	ZipCode       *string  `db:"zip_code"        json:"zip_code"        validate:"omitempty,max=20"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitnil,gt=0"`
	PropertyType  *string  `db:"property_type"   json:"property_type"   validate:"omitnil,oneof=house apartment room"`
	Bedrooms      *int     `db:"bedrooms"        json:"bedrooms"        validate:"omitnil,gte=1"`
	Bathrooms     *int     `db:"bathrooms"       json:"bathrooms"       validate:"omitnil,gte=1"`
	MaxGuests     *int     `db:"max_guests"      json:"max_guests"      validate:"omitnil,gte=1"`
	Amenities     []string `db:"amenities"       json:"amenities"       validate:"omitempty,dive,max=100"`
	IsAvailable   *bool    `db:"is_available"    json:"is_available"    validate:"omitempty"`
}

// ToFieldMap builds the update map, converting slices into their pq
// representations so they bind as Postgres arrays.
func (r *UpdateListingRequest) ToFieldMap() map[string]any {
	fields := shared.TransformFields(*r)

	if r.Amenities != nil {
		fields[model.FieldAmenities] = pq.StringArray(r.Amenities)
	}

	return fields
}

type GetListingsRequest struct {
	gDto.QueryParams
	City         string
	State        string
	Country      string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	MaxGuests    *int
	IsAvailable  *bool
	Search       string
	HostID       string
}

func (r *GetListingsRequest) FromRequest(req *http.Request) {
	r.QueryParams.FromRequest(req, true)
	r.SanitizeSort(
		model.FieldPricePerNight,
		model.FieldBedrooms,
		model.FieldMaxGuests,
		constant.FieldCreatedAt,
		constant.FieldUpdatedAt,
	)

	query := req.URL.Query()

	r.City = query.Get(model.FieldCity)
	r.State = query.Get(model.FieldState)
	r.Country = query.Get(model.FieldCountry)
	r.PropertyType = query.Get(model.FieldPropertyType)
	r.HostID = query.Get(model.FieldHostID)
	r.Search = query.Get(constant.RequestParamSearch)
	r.IsAvailable = shared.ConvertStringToBool(query.Get(model.FieldIsAvailable))

	if minPrice := query.Get("min_price"); minPrice != "" {
		if value, err := shared.ConvertStringToFloat(minPrice); err == nil {
			r.MinPrice = &value
		}
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if value, err := shared.ConvertStringToFloat(maxPrice); err == nil {
			r.MaxPrice = &value
		}
	}

	if bedrooms := query.Get(model.FieldBedrooms); bedrooms != "" {
		if value, err := shared.ConvertStringToInt(bedrooms); err == nil {
			r.Bedrooms = &value
		}
	}

	if maxGuests := query.Get(model.FieldMaxGuests); maxGuests != "" {
		if value, err := shared.ConvertStringToInt(maxGuests); err == nil {
			r.MaxGuests = &value
		}
	}
}

// ToFilterGroup translates the request into repository filters. Search
// matches the descriptive and location fields.
func (r *GetListingsRequest) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if r.City != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldCity,
			Value:    r.City,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.State != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldState,
			Value:    r.State,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.Country != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldCountry,
			Value:    r.Country,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.PropertyType != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldPropertyType,
			Value:    r.PropertyType,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.MinPrice != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "min_price",
			Field:    model.FieldPricePerNight,
			Value:    *r.MinPrice,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if r.MaxPrice != nil {
		filters = append(filters, gDto.Filter{
			ArgName:  "max_price",
			Field:    model.FieldPricePerNight,
			Value:    *r.MaxPrice,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	if r.Bedrooms != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBedrooms,
			Value:    *r.Bedrooms,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if r.MaxGuests != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldMaxGuests,
			Value:    *r.MaxGuests,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if r.IsAvailable != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Value:    *r.IsAvailable,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.HostID != "" {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldHostID,
			Value:    r.HostID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if r.Search != "" {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "search_title",
					Field:    model.FieldTitle,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_description",
					Field:    model.FieldDescription,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_address",
					Field:    model.FieldAddress,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_city",
					Field:    model.FieldCity,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_state",
					Field:    model.FieldState,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_country",
					Field:    model.FieldCountry,
					Value:    r.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
			},
		})
	}

	return gDto.FilterGroup{Filters: filters}
}

type UploadImageRequest struct {
	File       multipart.File        `validate:"required"`
	FileHeader *multipart.FileHeader `validate:"required,maxfilesize=5,mimetypes=image/jpeg image/png image/webp"`
}

type ListingResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	Country       string               `json:"country"`
	ZipCode       string               `json:"zip_code"`
	PricePerNight float64              `json:"price_per_night"`
	PropertyType  string               `json:"property_type"`
	Bedrooms      int                  `json:"bedrooms"`
	Bathrooms     int                  `json:"bathrooms"`
	MaxGuests     int                  `json:"max_guests"`
	Amenities     []string             `json:"amenities"`
	Images        []string             `json:"images"`
	IsAvailable   bool                 `json:"is_available"`
	Host          userDto.UserResponse `json:"host"`
	gDto.Metadata
}

func (r *ListingResponse) FromModel(listing model.Listing) {
	r.ID = listing.ID
	r.Title = listing.Title
	r.Description = listing.Description
	r.Address = listing.Address
	r.City = listing.City
	r.State = listing.State
	r.Country = listing.Country
	r.ZipCode = listing.ZipCode
	r.PricePerNight = listing.PricePerNight
	r.PropertyType = listing.PropertyType
	r.Bedrooms = listing.Bedrooms
	r.Bathrooms = listing.Bathrooms
	r.MaxGuests = listing.MaxGuests
	r.Amenities = listing.Amenities
	r.Images = listing.Images
	r.IsAvailable = listing.IsAvailable
	r.Metadata.FromModel(listing.Metadata)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}

	if r.Images == nil {
		r.Images = []string{}
	}
}

type GetListingsResponse struct {
	Listings  []ListingResponse `json:"listings"`
	TotalData int               `json:"total_data"`
	TotalPage int               `json:"total_page"`
}

func (r *GetListingsResponse) FromModels(listings []model.Listing, total, limit int) {
	r.Listings = make([]ListingResponse, len(listings))
	for i, listing := range listings {
		r.Listings[i].FromModel(listing)
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
