package domain

import (
	"math/big"
	"time"
)

// Severity of a single risk finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskLevel is the overall bucket of an assessment.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskFinding is one heuristic observation about a transaction.
type RiskFinding struct {
	Type     string         `json:"type"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// RiskAssessment is advisory output. Only CRITICAL sets CanExecute to false.
type RiskAssessment struct {
	RiskLevel       RiskLevel     `json:"risk_level"`
	Risks           []RiskFinding `json:"risks"`
	Recommendations []string      `json:"recommendations"`
	CanExecute      bool          `json:"can_execute"`
	AssessedAt      time.Time     `json:"assessed_at"`
}

// TransactionContext is the transaction under assessment.
type TransactionContext struct {
	UserID    string
	From      string
	Recipient string
	Amount    *big.Int // wei
	GasPrice  *big.Int // wei, nil when unknown
	GasCost   *big.Int // wei, nil when unknown
}
