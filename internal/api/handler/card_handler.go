package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/internal/core/ports"
	"github.com/fintrust/card-ledger/pkg/money"
)

// CardHandler handles HTTP requests for card ledger operations.
type CardHandler struct {
	service ports.CardService
}

func NewCardHandler(service ports.CardService) *CardHandler {
	return &CardHandler{service: service}
}

// Create handles POST /cards/add.
//
// @Summary      Issue a new card for a user
// @Tags         cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCardRequest  true  "Card details"
// @Success      201   {object}  cardResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cards/add [post]
func (h *CardHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.CreateCardInput{OwnerID: req.UserID, Number: req.Number}
	if req.Balance != "" {
		balance, err := money.Parse(req.Balance)
		if err != nil {
			return domain.ErrInvalidAmount
		}
		in.InitialBalance = &balance
	}

	card, err := h.service.CreateCard(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCardResponse(card))
}

// Get handles GET /cards/get/:id.
//
// @Summary      Get a card by id
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardResponse
// @Failure      404  {object}  map[string]string
// @Router       /cards/get/{id} [get]
func (h *CardHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	card, err := h.service.GetCard(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// ListUserCards handles GET /cards/userCards/:userId.
//
// @Summary      List all cards of a user
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   cardResponse
// @Router       /cards/userCards/{userId} [get]
func (h *CardHandler) ListUserCards(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	cards, err := h.service.ListUserCards(c.Request().Context(), id, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponses(cards))
}

// ListMyCards handles GET /cards/userCards/me.
//
// @Summary      List the caller's own cards
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  cardResponse
// @Router       /cards/userCards/me [get]
func (h *CardHandler) ListMyCards(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	cards, err := h.service.ListMyCards(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponses(cards))
}

// ListAll handles GET /cards/all.
//
// @Summary      List every card in the ledger
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  cardResponse
// @Router       /cards/all [get]
func (h *CardHandler) ListAll(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	cards, err := h.service.ListAllCards(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponses(cards))
}

// RequestLock handles POST /cards/blockQuery/:id.
//
// @Summary      Request a block on the caller's own card
// @Tags         cards
// @Security     BearerAuth
// @Param        id  path  string  true  "Card id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /cards/blockQuery/{id} [post]
func (h *CardHandler) RequestLock(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if _, err := h.service.RequestLock(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Block handles POST /cards/block/:id.
//
// @Summary      Block a card
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardResponse
// @Router       /cards/block/{id} [post]
func (h *CardHandler) Block(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	card, err := h.service.BlockCard(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// Activate handles POST /cards/activate/:id.
//
// @Summary      Activate a card
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Card id"
// @Success      200  {object}  cardResponse
// @Router       /cards/activate/{id} [post]
func (h *CardHandler) Activate(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	card, err := h.service.ActivateCard(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCardResponse(card))
}

// Delete handles DELETE /cards/delete/:id.
//
// @Summary      Delete a card permanently
// @Tags         cards
// @Security     BearerAuth
// @Param        id  path  string  true  "Card id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /cards/delete/{id} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCard(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Transfer handles POST /cards/transfer.
//
// @Summary      Transfer funds between the caller's own cards
// @Tags         cards
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  transferRequest  true  "Transfer details"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /cards/transfer [post]
func (h *CardHandler) Transfer(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	err = h.service.Transfer(c.Request().Context(), id, ports.TransferInput{
		FromCardID: req.FromCardID,
		ToCardID:   req.ToCardID,
		Amount:     amount,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Balance handles GET /cards/balance/:cardId.
//
// @Summary      Check the balance of the caller's own card
// @Tags         cards
// @Produce      json
// @Security     BearerAuth
// @Param        cardId  path      string  true  "Card id"
// @Success      200     {object}  balanceResponse
// @Failure      403     {object}  map[string]string
// @Router       /cards/balance/{cardId} [get]
func (h *CardHandler) Balance(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	cardID := c.Param("cardId")
	balance, err := h.service.CheckBalance(c.Request().Context(), id, cardID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{CardID: cardID, Balance: balance})
}
