package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/repository"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type ProductVariantResponse struct {
	WeightLabel string  `json:"weightLabel"`
	Price       float64 `json:"price"`
}

type ProductResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Category    string                   `json:"category"`
	ImageURL    string                   `json:"imageUrl"`
	Variants    []ProductVariantResponse `json:"variants"`
}

func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	products, err := h.queries.ListProducts(ctx)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to list products")
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		item, err := h.productResponse(r, product)
		if err != nil {
			h.logger.Error("failed to load product variants", "productId", product.ID.String(), "error", err)
			web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to load product variants")
			return
		}
		response = append(response, item)
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, response)
}

func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	var productID pgtype.UUID
	if err := productID.Scan(id); err != nil {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Product ID", "invalid product id")
		return
	}

	product, err := h.queries.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Product Not Found", "product not found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to get product")
		return
	}

	response, err := h.productResponse(r, product)
	if err != nil {
		h.logger.Error("failed to load product variants", "productId", id, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to load product variants")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, response)
}

func (h *Handler) productResponse(r *http.Request, product repository.Product) (ProductResponse, error) {
	variants, err := h.queries.ListProductVariants(r.Context(), product.ID)
	if err != nil {
		return ProductResponse{}, err
	}

	variantResponses := make([]ProductVariantResponse, 0, len(variants))
	for _, variant := range variants {
		price, err := variant.Price.Float64Value()
		if err != nil {
			return ProductResponse{}, err
		}
		variantResponses = append(variantResponses, ProductVariantResponse{
			WeightLabel: variant.WeightLabel,
			Price:       price.Float64,
		})
	}

	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		ImageURL:    product.ImageUrl,
		Variants:    variantResponses,
	}, nil
}
