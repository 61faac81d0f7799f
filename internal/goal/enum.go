package goal

type ContributionType string

const (
	ContributionDeposit    ContributionType = "deposit"
	ContributionWithdrawal ContributionType = "withdrawal"
)

func (t ContributionType) Valid() bool {
	return t == ContributionDeposit || t == ContributionWithdrawal
}

// Sign is +1 for deposits and -1 for withdrawals.
func (t ContributionType) Sign() int64 {
	if t == ContributionWithdrawal {
		return -1
	}
	return 1
}
