package commands

import "rentens-market/internal/pkg/errs"

// Every operation fails with exactly one of these sentinels; handlers map
// them onto HTTP statuses with errors.Is. A rejected operation leaves state
// untouched.
var (
	// Authorization
	ErrNotAssetOwner    = errs.New("caller is not the asset owner")
	ErrNotListingOwner  = errs.New("caller is not the listing owner")
	ErrNotRentalOwner   = errs.New("caller is not the rental owner")
	ErrNotRenter        = errs.New("caller is not the current renter")
	ErrNotRentalParty   = errs.New("caller is neither owner nor renter")
	ErrNotOfferProposer = errs.New("caller did not propose this offer")
	ErrNotCounterparty  = errs.New("caller is not the offer counterparty")
	ErrNotAdministrator = errs.New("caller is not the administrator")
	ErrNotReceiptHolder = errs.New("caller does not hold the receipt")

	// Precondition / state
	ErrListingAlreadyActive = errs.New("an active listing already exists for this asset")
	ErrNoActiveListing      = errs.New("no active listing for this asset")
	ErrListingNotActive     = errs.New("listing is not active")
	ErrNoActiveRental       = errs.New("no active rental for this asset")
	ErrAlreadyRented        = errs.New("asset is already rented")
	ErrRentalStillActive    = errs.New("rental has not expired yet")
	ErrNoPendingOffer       = errs.New("no pending extension offer for this asset")
	ErrExtensionsNotAllowed = errs.New("listing does not allow extensions")

	// Bounds
	ErrRentalPeriodLongerThanRegistration = errs.New("rental period exceeds remaining registration")
	ErrExceedsRegistrationPeriod          = errs.New("end time exceeds remaining registration")
	ErrExceedsMaxRentalDuration           = errs.New("requested duration exceeds the listed maximum")
	ErrFeeTooHigh                         = errs.New("fee rate above ceiling")
	ErrInvalidTerms                       = errs.New("invalid listing terms")
	ErrInvalidExtensionEnd                = errs.New("proposed end must exceed current rental end")

	// Payment
	ErrInsufficientPayment = errs.New("payment below required price")
	ErrPaymentFailed       = errs.New("payment transfer failed")

	// Staleness
	ErrOwnerChanged = errs.New("asset owner changed since listing")

	// Parties
	ErrSelfRental        = errs.New("owner cannot rent their own asset")
	ErrInvalidTransferee = errs.New("receipt transferee is invalid")

	// Collaborator failures
	ErrRegistryUnavailable = errs.New("name registry call failed")
	ErrReceiptUnavailable  = errs.New("receipt issuer call failed")
)
