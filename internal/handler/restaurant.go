// Package handler exposes the HTTP handlers of the restaurant review site.
// This file covers browsing restaurants and submitting restaurants and
// reviews.  Form submissions redirect to the restaurant's detail page.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reviews/internal/metrics"
	"github.com/iliyamo/restaurant-reviews/internal/model"
	"github.com/iliyamo/restaurant-reviews/internal/queue"
	"github.com/iliyamo/restaurant-reviews/internal/rating"
	"github.com/iliyamo/restaurant-reviews/internal/repository"
)

const (
	msgRestaurantRequired = "You must include a restaurant name, address, and description"
	msgReviewRequired     = "You must include a user name, rating, and review text"
)

// EventPublisher receives review.created events after a review is stored.
type EventPublisher interface {
	PublishReviewCreated(ctx context.Context, ev queue.ReviewCreatedEvent) error
}

// RestaurantHandler bundles the repositories and services the restaurant
// pages need.  Events may be nil to disable publishing.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
	Reviews     *repository.ReviewRepo
	Ratings     *rating.Service
	Events      EventPublisher

	now func() time.Time
}

// NewRestaurantHandler constructs a RestaurantHandler and panics if a
// repository is nil.
func NewRestaurantHandler(restaurants *repository.RestaurantRepo, reviews *repository.ReviewRepo, events EventPublisher) *RestaurantHandler {
	if restaurants == nil || reviews == nil {
		panic("nil repository passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{
		Restaurants: restaurants,
		Reviews:     reviews,
		Ratings:     rating.NewService(reviews),
		Events:      events,
		now:         time.Now,
	}
}

// RestaurantListItem is one row of the restaurant list with its rating.
type RestaurantListItem struct {
	model.Restaurant
	Rating rating.Summary `json:"rating"`
}

// RestaurantDetail is the detail page payload.
type RestaurantDetail struct {
	Restaurant model.Restaurant `json:"restaurant"`
	Reviews    []model.Review   `json:"reviews"`
	Rating     rating.Summary   `json:"rating"`
}

// FormField describes one input of a submission form.
type FormField struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	MaxLength int    `json:"max_length,omitempty"`
}

// restaurantForm holds the fields of POST /add.
type restaurantForm struct {
	Name          string `form:"restaurant_name" validate:"required,max=50"`
	StreetAddress string `form:"street_address" validate:"required,max=50"`
	Description   string `form:"description" validate:"required,max=250"`
}

// reviewForm holds the fields of POST /review/:id once rating is parsed.
type reviewForm struct {
	UserName   string `form:"user_name" validate:"required,max=30"`
	Rating     int    `form:"rating" validate:"min=1,max=5"`
	ReviewText string `form:"review_text" validate:"required,max=500"`
}

// List handles GET / and returns every restaurant with its star rating.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	restaurants, err := h.Restaurants.ListAll(ctx)
	if err != nil {
		return dbError(c, err)
	}
	ids := make([]uint, 0, len(restaurants))
	for _, r := range restaurants {
		ids = append(ids, r.ID)
	}
	ratings, err := h.Reviews.RatingsByRestaurants(ctx, ids)
	if err != nil {
		return dbError(c, err)
	}
	out := make([]RestaurantListItem, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, RestaurantListItem{Restaurant: r, Rating: rating.Summarize(ratings[r.ID])})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Detail handles GET /:id and returns the restaurant, its reviews and rating.
func (h *RestaurantHandler) Detail(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return dbError(c, err)
	}
	reviews, err := h.Reviews.ListByRestaurant(ctx, id)
	if err != nil {
		return dbError(c, err)
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}
	return c.JSON(http.StatusOK, RestaurantDetail{Restaurant: *rest, Reviews: reviews, Rating: rating.Summarize(ratings)})
}

// CreateForm handles GET /create and describes the restaurant form.
func (h *RestaurantHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"action": "/add",
		"method": http.MethodPost,
		"fields": []FormField{
			{Name: "restaurant_name", Label: "Restaurant name", MaxLength: 50},
			{Name: "street_address", Label: "Street address", MaxLength: 50},
			{Name: "description", Label: "Description", MaxLength: 250},
		},
	})
}

// AddRestaurant handles POST /add.  All three fields are required; on
// success the client is redirected to the new restaurant.
func (h *RestaurantHandler) AddRestaurant(c echo.Context) error {
	form := restaurantForm{
		Name:          strings.TrimSpace(c.FormValue("restaurant_name")),
		StreetAddress: strings.TrimSpace(c.FormValue("street_address")),
		Description:   strings.TrimSpace(c.FormValue("description")),
	}
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err, msgRestaurantRequired)})
	}

	rest := &model.Restaurant{
		Name:          form.Name,
		StreetAddress: form.StreetAddress,
		Description:   form.Description,
	}
	if err := h.Restaurants.Create(c.Request().Context(), rest); err != nil {
		return dbError(c, err)
	}
	return c.Redirect(http.StatusFound, detailPath(rest.ID))
}

// AddReview handles POST /review/:id.  The review is stamped with the
// current time and the client is redirected to the restaurant.
func (h *RestaurantHandler) AddReview(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	rawRating := strings.TrimSpace(c.FormValue("rating"))
	form := reviewForm{
		UserName:   strings.TrimSpace(c.FormValue("user_name")),
		ReviewText: strings.TrimSpace(c.FormValue("review_text")),
	}
	if form.UserName == "" || form.ReviewText == "" || rawRating == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgReviewRequired})
	}
	n, err := strconv.Atoi(rawRating)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be a whole number"})
	}
	form.Rating = n
	if err := c.Validate(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err, msgReviewRequired)})
	}

	ctx := c.Request().Context()
	rest, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return dbError(c, err)
	}

	rev := &model.Review{
		RestaurantID: id,
		ReviewDate:   h.now(),
		UserName:     form.UserName,
		Rating:       form.Rating,
		ReviewText:   form.ReviewText,
	}
	if err := h.Reviews.Create(ctx, rev); err != nil {
		return dbError(c, err)
	}
	metrics.ReviewCreated()
	h.publish(c, rest, rev)

	return c.Redirect(http.StatusFound, detailPath(id))
}

// publish sends review.created with the restaurant's updated rating without
// blocking the response.  Failures are logged and otherwise ignored.
func (h *RestaurantHandler) publish(c echo.Context, rest *model.Restaurant, rev *model.Review) {
	if h.Events == nil {
		return
	}
	ev := queue.ReviewCreatedEvent{
		ReviewID:       rev.ID,
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		UserName:       rev.UserName,
		Rating:         rev.Rating,
		ReviewDate:     rev.ReviewDate.UTC().Format(time.RFC3339),
	}
	if summary, err := h.Ratings.ForRestaurant(c.Request().Context(), rest.ID); err != nil {
		c.Logger().Warnf("review %d: rating summary unavailable: %v", rev.ID, err)
	} else {
		ev.ReviewCount = summary.ReviewCount
		ev.AvgRating = summary.AvgRating
	}
	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Events.PublishReviewCreated(ctx, ev); err != nil {
			logger.Warnf("review %d: event not published: %v", ev.ReviewID, err)
		}
	}()
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func detailPath(id uint) string {
	return "/" + strconv.FormatUint(uint64(id), 10)
}

// dbError logs a persistence failure and answers 500 without leaking details.
func dbError(c echo.Context, err error) error {
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
