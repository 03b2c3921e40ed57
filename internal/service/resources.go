package service

import (
	"context"
	"time"

	"admin-gateway/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog resources are thin passthroughs to the upstream API. Mutations
// invalidate the snapshot cache; deletes leave an audit trail.

func (s *AdminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.gateway.ListProducts(ctx)
}

func (s *AdminService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.gateway.GetProduct(ctx, id)
}

func (s *AdminService) CreateProduct(ctx context.Context, fields map[string]any) error {
	if err := s.gateway.CreateProduct(ctx, fields); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id int64, fields map[string]any) error {
	if err := s.gateway.UpdateProduct(ctx, id, fields); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	s.auditRecordDeleted(ctx, "product", id)
	return nil
}

func (s *AdminService) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	return s.gateway.ListWarehouses(ctx)
}

func (s *AdminService) GetWarehouse(ctx context.Context, id int64) (*models.Warehouse, error) {
	return s.gateway.GetWarehouse(ctx, id)
}

func (s *AdminService) CreateWarehouse(ctx context.Context, fields map[string]any) error {
	if err := s.gateway.CreateWarehouse(ctx, fields); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *AdminService) UpdateWarehouse(ctx context.Context, id int64, fields map[string]any) error {
	if err := s.gateway.UpdateWarehouse(ctx, id, fields); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *AdminService) DeleteWarehouse(ctx context.Context, id int64) error {
	if err := s.gateway.DeleteWarehouse(ctx, id); err != nil {
		return err
	}
	s.invalidateSnapshot(ctx)
	s.auditRecordDeleted(ctx, "warehouse", id)
	return nil
}

func (s *AdminService) ListInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	return s.gateway.ListInventory(ctx)
}

func (s *AdminService) ListInventoryByWarehouse(ctx context.Context, warehouseID int64) ([]models.InventoryRecord, error) {
	return s.gateway.ListInventoryByWarehouse(ctx, warehouseID)
}

func (s *AdminService) ListInventoryByProduct(ctx context.Context, productID int64) ([]models.InventoryRecord, error) {
	return s.gateway.ListInventoryByProduct(ctx, productID)
}

func (s *AdminService) GetInventoryRecord(ctx context.Context, id int64) (*models.InventoryRecord, error) {
	return s.gateway.GetInventoryRecord(ctx, id)
}

func (s *AdminService) CreateInventoryRecord(ctx context.Context, fields map[string]any) error {
	return s.gateway.CreateInventoryRecord(ctx, fields)
}

func (s *AdminService) UpdateInventoryRecord(ctx context.Context, id int64, fields map[string]any) error {
	return s.gateway.UpdateInventoryRecord(ctx, id, fields)
}

func (s *AdminService) DeleteInventoryRecord(ctx context.Context, id int64) error {
	if err := s.gateway.DeleteInventoryRecord(ctx, id); err != nil {
		return err
	}
	s.auditRecordDeleted(ctx, "inventory", id)
	return nil
}

func (s *AdminService) auditRecordDeleted(ctx context.Context, resource string, id int64) {
	if s.audit == nil {
		return
	}
	event := &models.RecordDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeRecordDeleted,
			Timestamp: time.Now(),
		},
		Resource: resource,
		RecordID: id,
	}
	if err := s.audit.PublishRecordDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish RecordDeleted event",
			zap.String("resource", resource),
			zap.Int64("record_id", id),
			zap.Error(err))
	}
}
