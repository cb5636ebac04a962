package service

import (
	"auromart/internal/dto"
	"auromart/internal/model"
)

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.ID.String(),
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            string(u.Role),
		BusinessName:    u.BusinessName,
		Address:         u.Address,
		PhoneNumber:     u.PhoneNumber,
		WhatsappNumber:  u.WhatsappNumber,
		ProfileImageURL: u.ProfileImageURL,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
	}
}

func userToPublic(u *model.User) *dto.PublicUserResponse {
	if u == nil {
		return nil
	}
	return &dto.PublicUserResponse{
		ID:              u.ID.String(),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            string(u.Role),
		BusinessName:    u.BusinessName,
		Address:         u.Address,
		PhoneNumber:     u.PhoneNumber,
		WhatsappNumber:  u.WhatsappNumber,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func usersToPublic(users []model.User) []dto.PublicUserResponse {
	out := make([]dto.PublicUserResponse, len(users))
	for i := range users {
		out[i] = *userToPublic(&users[i])
	}
	return out
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		SKU:            p.SKU,
		ManufacturerID: p.ManufacturerID.String(),
		BasePrice:      p.BasePrice,
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	return resp
}

func inventoryToResponse(inv *model.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            inv.ID.String(),
		DistributorID: inv.DistributorID.String(),
		ProductID:     inv.ProductID.String(),
		Quantity:      inv.Quantity,
		SellingPrice:  inv.SellingPrice,
		IsAvailable:   inv.IsAvailable,
		UpdatedAt:     inv.UpdatedAt,
		Product:       productToResponse(inv.Product),
	}
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		RetailerID:    o.RetailerID.String(),
		DistributorID: o.DistributorID.String(),
		Status:        string(o.Status),
		DeliveryMode:  string(o.DeliveryMode),
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Retailer:      userToPublic(o.Retailer),
		Distributor:   userToPublic(o.Distributor),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:         it.ID.String(),
			ProductID:  it.ProductID.String(),
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			Product:    productToResponse(it.Product),
		})
	}
	return resp
}

func ordersToResponse(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = *orderToResponse(&orders[i])
	}
	return out
}

func partnershipToResponse(p *model.Partnership) dto.PartnershipResponse {
	return dto.PartnershipResponse{
		ID:              p.ID.String(),
		RequesterID:     p.RequesterID.String(),
		PartnerID:       p.PartnerID.String(),
		Status:          string(p.Status),
		PartnershipType: string(p.PartnershipType),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Requester:       userToPublic(p.Requester),
		Partner:         userToPublic(p.Partner),
	}
}

func notificationToResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.ID.String(),
		UserID:      n.UserID.String(),
		Message:     n.Message,
		Type:        string(n.Type),
		IsDelivered: n.IsDelivered,
		SentAt:      n.SentAt,
		CreatedAt:   n.CreatedAt,
	}
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID.String(),
		PDFURL:        inv.PDFURL,
		SentAt:        inv.SentAt,
		CreatedAt:     inv.CreatedAt,
	}
}
