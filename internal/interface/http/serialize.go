package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/domain/entity"
)

func productJSON(p *entity.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"image_url":   p.ImageURL,
		"price":       p.Price,
		"description": p.Description,
		"quantity":    p.Quantity,
		"category":    p.Category,
		"rating":      p.Rating,
		"seller_id":   p.SellerID,
		"created_at":  p.CreatedAt,
		"updated_at":  p.UpdatedAt,
	}
}

func productListJSON(products []entity.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	return out
}

func cartJSON(v *application.CartView) gin.H {
	items := make([]gin.H, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, gin.H{
			"product":  productJSON(&l.Product),
			"quantity": l.Quantity,
			"subtotal": l.Subtotal(),
			"added_at": l.AddedAt,
		})
	}
	return gin.H{"items": items, "total_sum": v.Total}
}

func orderJSON(o *entity.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, gin.H{
			"id":         it.ID,
			"product_id": it.ProductID,
			"title":      it.Title,
			"image_url":  it.ImageURL,
			"category":   it.Category,
			"price":      it.Price,
			"quantity":   it.Quantity,
			"reviewed":   it.Reviewed,
		})
	}
	return gin.H{
		"id":         o.ID,
		"user_email": o.UserEmail,
		"items":      items,
		"total":      o.Total(),
		"created_at": o.CreatedAt,
	}
}

func reviewListJSON(reviews []entity.Review) []gin.H {
	out := make([]gin.H, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, gin.H{
			"id":         rv.ID,
			"product_id": rv.ProductID,
			"author":     rv.AuthorName,
			"rating":     rv.Rating,
			"review":     rv.Review,
			"created_at": rv.CreatedAt,
		})
	}
	return out
}
