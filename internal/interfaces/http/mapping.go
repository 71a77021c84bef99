package http

import (
	"github.com/tu-usuario/tienda-api/internal/application/dto"
	"github.com/tu-usuario/tienda-api/internal/domain/entity"
)

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(items []*entity.Product, limit, offset int) dto.ProductListResponse {
	out := dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range items {
		out.Items = append(out.Items, toProductResponse(p))
	}
	return out
}

func toCategoryResponse(cat *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		Lines:      make([]dto.OrderLineResponse, 0, len(o.Lines)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return out
}

func toOrderList(items []*entity.Order, limit, offset int) dto.OrderListResponse {
	out := dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, o := range items {
		out.Items = append(out.Items, toOrderResponse(o))
	}
	return out
}

func toInventoryResponse(rec *entity.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:                rec.ID,
		ProductID:         rec.ProductID,
		Quantity:          rec.Quantity,
		WarehouseLocation: rec.WarehouseLocation,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

func toReservationResponse(res *entity.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		Token:     res.Token,
		ProductID: res.ProductID,
		Quantity:  res.Quantity,
		Status:    res.Status,
		CreatedAt: res.CreatedAt,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		OrderID:     s.OrderID,
		Quantity:    s.Quantity,
		TotalAmount: s.TotalAmount,
		SaleDate:    s.SaleDate,
	}
}

func toSaleList(items []*entity.Sale, limit, offset int) dto.SaleListResponse {
	out := dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range items {
		out.Items = append(out.Items, toSaleResponse(s))
	}
	return out
}

func toReviewResponse(rv *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         rv.ID,
		ProductID:  rv.ProductID,
		CustomerID: rv.CustomerID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		ReviewDate: rv.ReviewDate,
	}
}
