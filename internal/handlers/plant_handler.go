package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/services"
	"plantpal_backend/internal/services/dto"
)

type PlantHandler struct {
	*BaseHandler
	plantService *services.PlantService
	careService  *services.CareService
}

func NewPlantHandler(base *BaseHandler, plantService *services.PlantService, careService *services.CareService) *PlantHandler {
	return &PlantHandler{
		BaseHandler:  base,
		plantService: plantService,
		careService:  careService,
	}
}

func (h *PlantHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/plants", h.List)
	authed.POST("/plants", h.Create)
	authed.GET("/plants/:id", h.Get)
	authed.PUT("/plants/:id", h.Update)
	authed.DELETE("/plants/:id", h.Delete)
	authed.POST("/plants/:id/water", h.Water)
	authed.POST("/plants/:id/fertilize", h.Fertilize)
}

func (h *PlantHandler) List(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	plants, err := h.plantService.ListPlants(user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plants": dto.NewPlantDTOs(plants)})
}

func (h *PlantHandler) Create(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.CreatePlantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plant, err := h.plantService.CreatePlant(user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPlantDTO(plant))
}

func (h *PlantHandler) Get(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	plant, err := h.plantService.GetPlant(c.Param("id"), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlantDTO(plant))
}

func (h *PlantHandler) Update(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePlantRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plant, err := h.plantService.UpdatePlant(c.Param("id"), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlantDTO(plant))
}

func (h *PlantHandler) Delete(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	if err := h.plantService.DeletePlant(c.Param("id"), user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plant deleted"})
}

func (h *PlantHandler) Water(c *gin.Context) {
	h.recordCare(c, models.CareActionWater)
}

func (h *PlantHandler) Fertilize(c *gin.Context) {
	h.recordCare(c, models.CareActionFertilize)
}

func (h *PlantHandler) recordCare(c *gin.Context, kind models.CareActionKind) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	plant, err := h.careService.RecordCare(c.Param("id"), user.ID, kind)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlantDTO(plant))
}
