package workflow

import (
	"context"
	"errors"
	"math"
	"time"

	quoteRepo "vowflow/database/repository/quote"
	"vowflow/models"

	"github.com/google/uuid"
)

// SubmitQuote records a vendor's offer. Legal only while the workflow waits
// in vendor_contacted; the quote insert and the transition to quote_received
// commit in the same transaction.
func (s *DefaultWorkflowService) SubmitQuote(ctx context.Context, req models.SubmitQuoteRequest) (*models.Workflow, error) {
	if err := validateQuoteRequest(req); err != nil {
		return nil, err
	}

	wf, err := s.loadWorkflow(ctx, req.WorkflowID)
	if err != nil {
		return nil, err
	}
	if wf.VendorID != req.VendorID {
		return nil, NewAccessDeniedError("actor %s is not the vendor on workflow %s", req.VendorID, req.WorkflowID)
	}
	if wf.State != models.StateVendorContacted {
		return nil, NewInvalidTransitionError("cannot submit a quote while workflow is in state %s", wf.State)
	}

	quote := models.Quote{
		ID:                 uuid.New().String(),
		WorkflowID:         wf.ID,
		VendorID:           req.VendorID,
		QuoteAmount:        req.QuoteAmount,
		DepositPercentage:  req.DepositPercentage,
		ServiceDetails:     req.ServiceDetails,
		TermsAndConditions: req.TermsAndConditions,
		ValidUntil:         req.ValidUntil,
		Status:             models.QuotePending,
	}

	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		if _, err := s.Quotes.Create(txCtx, quote); err != nil {
			return err
		}
		return s.Workflows.SetRefs(txCtx, wf.ID, models.WorkflowRefs{QuoteID: quote.ID})
	}, models.StateQuoteReceived)
	if err != nil {
		return nil, err
	}

	s.dispatchFollowUps(updated, models.StateQuoteReceived, map[string]string{
		"amount":   formatAmount(quote.QuoteAmount),
		"currency": s.Currency,
	})
	return updated, nil
}

// AcceptQuote accepts the vendor's offer, computes the deposit/balance split
// and materializes the contract and booking. Quote acceptance, contract,
// booking and both state hops commit atomically; a lost availability race
// surfaces as Conflict from the booking index.
func (s *DefaultWorkflowService) AcceptQuote(ctx context.Context, workflowID, quoteID, customerID string, acceptedTerms bool) (*models.Workflow, error) {
	if !acceptedTerms {
		return nil, NewValidationError("terms and conditions must be accepted")
	}

	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wf.CustomerID != customerID {
		return nil, NewAccessDeniedError("actor %s is not the customer on workflow %s", customerID, workflowID)
	}
	if wf.State != models.StateQuoteReceived {
		return nil, NewInvalidTransitionError("cannot accept a quote while workflow is in state %s", wf.State)
	}

	quote, err := s.Quotes.GetByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrNotFound) {
			return nil, NewNotFoundError("quote %s not found", quoteID)
		}
		return nil, NewPersistenceError("failed to load quote: %v", err)
	}
	if quote.WorkflowID != wf.ID {
		return nil, NewValidationError("quote %s does not belong to workflow %s", quoteID, workflowID)
	}
	if quote.Status != models.QuotePending {
		return nil, NewInvalidTransitionError("quote %s is already %s", quoteID, quote.Status)
	}
	if !quote.ValidUntil.IsZero() && quote.ValidUntil.Before(time.Now()) {
		return nil, NewValidationError("quote %s expired on %s", quoteID, quote.ValidUntil.Format(dateLayout))
	}

	deposit := round2(quote.QuoteAmount * quote.DepositPercentage / 100)
	balance := round2(quote.QuoteAmount - deposit)

	contract := models.Contract{
		ID:          uuid.New().String(),
		WorkflowID:  wf.ID,
		QuoteID:     quote.ID,
		CustomerID:  wf.CustomerID,
		VendorID:    wf.VendorID,
		TotalAmount: quote.QuoteAmount,
		Terms:       quote.TermsAndConditions,
		Status:      models.ContractDraft,
	}
	booking := models.Booking{
		ID:            uuid.New().String(),
		WorkflowID:    wf.ID,
		WeddingID:     wf.WeddingID,
		VendorID:      wf.VendorID,
		CustomerID:    wf.CustomerID,
		ServiceDate:   wf.ServiceDate,
		Start:         wf.Start,
		End:           wf.End,
		TotalAmount:   quote.QuoteAmount,
		DepositAmount: deposit,
		BalanceAmount: balance,
		Status:        models.BookingPending,
	}

	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		if err := s.Quotes.UpdateStatus(txCtx, quote.ID, models.QuoteAccepted); err != nil {
			return err
		}
		if _, err := s.Contracts.Create(txCtx, contract); err != nil {
			return err
		}
		if _, err := s.Bookings.Create(txCtx, booking); err != nil {
			return err
		}
		return s.Workflows.SetRefs(txCtx, wf.ID, models.WorkflowRefs{
			ContractID: contract.ID,
			BookingID:  booking.ID,
		})
	}, models.StateQuoteAccepted, models.StateContractGenerated)
	if err != nil {
		return nil, err
	}

	s.dispatchFollowUps(updated, models.StateContractGenerated, map[string]string{
		"amount":   formatAmount(quote.QuoteAmount),
		"currency": s.Currency,
	})
	return updated, nil
}

func validateQuoteRequest(req models.SubmitQuoteRequest) error {
	if req.WorkflowID == "" || req.VendorID == "" {
		return NewValidationError("workflow_id and vendor_id are required")
	}
	if req.QuoteAmount < 0 {
		return NewValidationError("quote_amount must not be negative")
	}
	if req.DepositPercentage < 0 || req.DepositPercentage > 100 {
		return NewValidationError("deposit_percentage must be between 0 and 100")
	}
	if !req.ValidUntil.IsZero() && req.ValidUntil.Before(time.Now()) {
		return NewValidationError("valid_until must be in the future")
	}
	return nil
}

// round2 rounds to two decimal places, the smallest unit quoted amounts use.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
