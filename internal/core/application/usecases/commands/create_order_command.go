package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDescriptionIsRequired   = errors.New("description is required")
	ErrAddressIsRequired       = errors.New("address is required")
	ErrClientContactIsRequired = errors.New("clientContact is required")
	ErrPriceIsInvalid          = errors.New("price must be greater than 0")
	ErrSuggestedFeeIsInvalid   = errors.New("suggestedFee must be greater than 0")
)

// CreateOrderCommand represents a store's request to publish a new delivery
// order. Encapsulates the product details, the delivery destination, and the
// store's suggested delivery fee that couriers will bid against.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, storeID, "ceramic vase", price, fee, "12 Baker St", "+1 555 0100")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s is open for bidding", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	storeID       kernel.UUID
	description   string
	price         kernel.Money
	suggestedFee  kernel.Money
	address       string
	clientContact string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to publish a new delivery order.
// Validates that both IDs are valid, the text fields are not empty, and both
// amounts are positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	storeID kernel.UUID,
	description string,
	price kernel.Money,
	suggestedFee kernel.Money,
	address string,
	clientContact string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setStoreID(storeID),
		orderCommand.setDescription(description),
		orderCommand.setPrice(price),
		orderCommand.setSuggestedFee(suggestedFee),
		orderCommand.setAddress(address),
		orderCommand.setClientContact(clientContact),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the identifier of the store publishing the order.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Description returns the product description shown to bidding couriers.
func (c CreateOrderCommand) Description() string {
	return c.description
}

// Price returns the product price, which sizes the courier's collateral.
func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

// SuggestedFee returns the store's suggested delivery fee.
func (c CreateOrderCommand) SuggestedFee() kernel.Money {
	return c.suggestedFee
}

// Address returns the delivery destination address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// ClientContact returns the recipient contact information.
func (c CreateOrderCommand) ClientContact() string {
	return c.clientContact
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateOrderCommand) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return ErrPriceIsInvalid
	}

	c.price = price
	return nil
}

func (c *CreateOrderCommand) setSuggestedFee(suggestedFee kernel.Money) error {
	if !suggestedFee.IsPositive() {
		return ErrSuggestedFeeIsInvalid
	}

	c.suggestedFee = suggestedFee
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setClientContact(clientContact string) error {
	if clientContact == "" {
		return ErrClientContactIsRequired
	}

	c.clientContact = clientContact
	return nil
}
