package dto

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// Conversión entidad → DTO compartida por los casos de uso.

func FromCategory(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID: c.ID, Name: c.Name, Description: c.Description,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func FromLocation(l *entity.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{
		ID: l.ID, Name: l.Name, Address: l.Address,
		CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
	}
}

func FromSupplier(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID: s.ID, Name: s.Name, ContactName: s.ContactName, Phone: s.Phone, Email: s.Email,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Category:    FromCategory(p.Category),
		Supplier:    FromSupplier(p.Supplier),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func FromProductLocation(pl *entity.ProductLocation) *ProductLocationResponse {
	if pl == nil {
		return nil
	}
	return &ProductLocationResponse{
		ID:           pl.ID,
		ProductID:    pl.ProductID,
		LocationID:   pl.LocationID,
		CurrentStock: pl.CurrentStock,
		MinimumStock: pl.MinimumStock,
		IsLowStock:   pl.IsLowStock(),
		Product:      FromProduct(pl.Product),
		Location:     FromLocation(pl.Location),
		CreatedAt:    pl.CreatedAt,
		UpdatedAt:    pl.UpdatedAt,
	}
}

func FromMovement(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:                      m.ID,
		Type:                    string(m.Type),
		Quantity:                m.Quantity,
		ProductLocationID:       m.ProductLocationID,
		TargetProductLocationID: m.TargetProductLocationID,
		UserID:                  m.UserID,
		Notes:                   m.Notes,
		CreatedAt:               m.CreatedAt,
		ProductLocation:         FromProductLocation(m.ProductLocation),
		TargetProductLocation:   FromProductLocation(m.TargetProductLocation),
		User:                    FromUser(m.User),
	}
}
