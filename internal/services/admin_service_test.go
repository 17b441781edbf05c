// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/utils"
)

func areaWithID(id uuid.UUID) models.DesignArea {
	return models.DesignArea{
		BaseModel: models.BaseModel{ID: id},
		Currency:  "USD",
	}
}

func groupClaiming(id uuid.UUID, areaIDs ...string) models.DesignAreaGroup {
	return models.DesignAreaGroup{
		BaseModel: models.BaseModel{ID: id},
		AreaIDs:   pq.StringArray(areaIDs),
		IsActive:  true,
	}
}

func TestMissingAreaIDs(t *testing.T) {
	front := uuid.New()
	back := uuid.New()
	areas := []models.DesignArea{areaWithID(front), areaWithID(back)}

	t.Run("all known", func(t *testing.T) {
		missing := missingAreaIDs([]string{front.String(), back.String()}, areas)
		assert.Empty(t, missing)
	})

	t.Run("unknown id reported", func(t *testing.T) {
		stranger := uuid.New().String()
		missing := missingAreaIDs([]string{front.String(), stranger}, areas)
		assert.Equal(t, []string{stranger}, missing)
	})

	t.Run("no areas at all", func(t *testing.T) {
		id := uuid.New().String()
		missing := missingAreaIDs([]string{id}, nil)
		assert.Equal(t, []string{id}, missing)
	})
}

func TestAreaOverlap(t *testing.T) {
	front := uuid.New().String()
	back := uuid.New().String()
	pocket := uuid.New().String()

	bundle := groupClaiming(uuid.New(), front, back)

	t.Run("claimed areas reported in request order", func(t *testing.T) {
		overlap := areaOverlap([]string{pocket, back, front}, []models.DesignAreaGroup{bundle}, uuid.Nil)
		assert.Equal(t, []string{back, front}, overlap)
	})

	t.Run("no overlap with disjoint group", func(t *testing.T) {
		overlap := areaOverlap([]string{pocket}, []models.DesignAreaGroup{bundle}, uuid.Nil)
		assert.Empty(t, overlap)
	})

	t.Run("group does not conflict with itself", func(t *testing.T) {
		overlap := areaOverlap([]string{front, back}, []models.DesignAreaGroup{bundle}, bundle.ID)
		assert.Empty(t, overlap)
	})

	t.Run("no groups configured", func(t *testing.T) {
		overlap := areaOverlap([]string{front}, nil, uuid.Nil)
		assert.Empty(t, overlap)
	})
}

func TestCreateDesignAreaGroupRequestValidation(t *testing.T) {
	base := func() *CreateDesignAreaGroupRequest {
		return &CreateDesignAreaGroupRequest{
			ProductTypeID: uuid.New(),
			Name:          "Front and Back Combo",
			Strategy:      "tiered",
			AreaIDs:       []string{uuid.New().String(), uuid.New().String()},
		}
	}

	t.Run("tiered group needs no group price", func(t *testing.T) {
		assert.NoError(t, utils.ValidateStruct(base()))
	})

	t.Run("single_charge requires group price", func(t *testing.T) {
		req := base()
		req.Strategy = "single_charge"
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("single_charge with group price passes", func(t *testing.T) {
		req := base()
		req.Strategy = "single_charge"
		price := int64(900)
		req.GroupPrice = &price
		assert.NoError(t, utils.ValidateStruct(req))
	})

	t.Run("unknown strategy rejected", func(t *testing.T) {
		req := base()
		req.Strategy = "bulk_discount"
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("malformed area id rejected", func(t *testing.T) {
		req := base()
		req.AreaIDs = []string{"not-a-uuid"}
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("empty area list rejected", func(t *testing.T) {
		req := base()
		req.AreaIDs = nil
		assert.Error(t, utils.ValidateStruct(req))
	})
}

func TestCreateDesignAreaRequestValidation(t *testing.T) {
	base := func() *CreateDesignAreaRequest {
		return &CreateDesignAreaRequest{
			ProductTypeID: uuid.New(),
			AreaType:      "front",
			Name:          "Front Center",
			BasePrice:     2.50,
			ColorPrice:    0.75,
			LayerPrice:    1.25,
			SetupFee:      5.00,
			Currency:      "USD",
			PrintMethods:  []string{"screen_print", "dtg"},
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, utils.ValidateStruct(base()))
	})

	t.Run("unsupported print method", func(t *testing.T) {
		req := base()
		req.PrintMethods = []string{"laser_etching"}
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("negative base price", func(t *testing.T) {
		req := base()
		req.BasePrice = -1
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("bad currency code", func(t *testing.T) {
		req := base()
		req.Currency = "US"
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("unknown area type", func(t *testing.T) {
		req := base()
		req.AreaType = "hood"
		assert.Error(t, utils.ValidateStruct(req))
	})
}

func TestCreateProductTypeRequestValidation(t *testing.T) {
	base := func() *CreateProductTypeRequest {
		return &CreateProductTypeRequest{
			Name:      "Classic Tee",
			Slug:      "classic-tee",
			BasePrice: 12.00,
			Currency:  "USD",
		}
	}

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, utils.ValidateStruct(base()))
	})

	t.Run("uppercase slug rejected", func(t *testing.T) {
		req := base()
		req.Slug = "Classic-Tee"
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("short slug rejected", func(t *testing.T) {
		req := base()
		req.Slug = "ab"
		assert.Error(t, utils.ValidateStruct(req))
	})

	t.Run("status outside lifecycle rejected", func(t *testing.T) {
		req := base()
		req.Status = "retired"
		assert.Error(t, utils.ValidateStruct(req))
	})
}
