package coach

// CalculateFee returns the rental fee in cents for a coach.
//
// Fixed coaches pay their flat fee_value regardless of guests. Percentage
// coaches pay fee_value percent-times-100 (2000 = 20.00%) of the base plan
// price per attending guest, rounded half-up to the nearest cent. The base
// plan price comes from the pricing collaborator and is passed in by the
// caller.
func CalculateFee(c *Coach, basePriceCents int64, guestCount int) int64 {
	switch c.FeeType {
	case FeeTypePercentage:
		if guestCount < 0 {
			guestCount = 0
		}
		total := c.FeeValue * basePriceCents * int64(guestCount)
		return (total + 5000) / 10000
	default:
		return c.FeeValue
	}
}
