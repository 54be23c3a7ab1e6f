package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ladelicato/salesbot/store"
)

func (s *Server) homeHandler(c fiber.Ctx) error {
	return c.SendString("Ladelicato SaaS - Backend")
}

func (s *Server) healthHandler(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"bot":    s.status.Snapshot(),
	})
}

func (s *Server) metricsHandler(c fiber.Ctx) error {
	sales, err := s.store.Sales()
	if err != nil {
		log.Error().Err(err).Msg("Error loading sales")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load sales"})
	}

	pending, err := s.store.Pending()
	if err != nil {
		log.Error().Err(err).Msg("Error loading pending set")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load pending set"})
	}

	answered, err := s.store.Answered()
	if err != nil {
		log.Error().Err(err).Msg("Error loading answered set")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load answered set"})
	}

	metrics := computeMetrics(sales, pendingClients(pending, answered), s.status.Snapshot().Online, time.Now())
	return c.JSON(metrics)
}

func (s *Server) listSalesHandler(c fiber.Ctx) error {
	sales, err := s.store.Sales()
	if err != nil {
		log.Error().Err(err).Msg("Error loading sales")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load sales"})
	}

	if sales == nil {
		sales = []store.SaleRecord{}
	}
	return c.JSON(sales)
}

// addSaleHandler registers a manual sale. Manual records get a synthetic
// thread id so they never collide with auto-generated ones.
func (s *Server) addSaleHandler(c fiber.Ctx) error {
	var req SaleRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	sale := store.SaleRecord{
		ThreadID:  "manual_" + uuid.NewString(),
		Customer:  "Cliente Manual",
		Amount:    s.unitPrice,
		Timestamp: time.Now(),
	}
	if req.Customer != nil && *req.Customer != "" {
		sale.Customer = *req.Customer
	}
	if req.Amount != nil {
		sale.Amount = *req.Amount
	}

	if err := s.store.AddSale(sale); err != nil {
		log.Error().Err(err).Msg("Error adding manual sale")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to save sale"})
	}

	log.Info().
		Str("thread_id", sale.ThreadID).
		Str("customer", sale.Customer).
		Float64("amount", sale.Amount).
		Msg("Manual sale registered")

	return c.JSON(SaleResponse{Status: "ok", Sale: sale})
}

func (s *Server) editSaleHandler(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "índice inválido"})
	}

	var req SaleRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	sale, err := s.store.UpdateSale(index, req.Customer, req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrSaleNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "índice inválido"})
		}
		log.Error().Err(err).Int("index", index).Msg("Error updating sale")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to update sale"})
	}

	return c.JSON(SaleResponse{Status: "ok", Sale: sale})
}
