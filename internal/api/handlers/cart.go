package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
	service "github.com/shopassist/shopassist/internal/services"
	"github.com/shopassist/shopassist/internal/utils"
	"github.com/shopassist/shopassist/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCartRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError("Invalid cart payload").WithError(err))
			return
		}

		cart, err := h.cartService.CreateCart(r.Context(), &req)
		if err != nil {
			slog.Error("Error during cart creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart created successfully", slog.String("cartId", fmt.Sprintf("%v", cart.ID)), slog.Int64("items", cart.TotalItems))
		response.Success(w, http.StatusCreated, cart)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := cartID(r)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid cart id"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := cartID(r)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid cart id"))
			return
		}

		var req models.UpdateCartRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError("Invalid cart payload").WithError(err))
			return
		}

		cart, err := h.cartService.UpdateCart(r.Context(), id, &req)
		if err != nil {
			slog.Error("Error during cart update", slog.Int64("cartId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func cartID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
