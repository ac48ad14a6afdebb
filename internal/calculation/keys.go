package calculation

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// recordNamespace scopes the name-based record identifiers
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:premium-calculator:record"))

// RecordKey returns the stable document identifier for a (company, employee, month,
// method) result, so recalculating the same month overwrites rather than duplicates.
func RecordKey(companyID, empNo string, month dateutil.YearMonth, method domain.CalculationMethod) string {
	name := strings.Join([]string{companyID, empNo, month.String(), string(method)}, "/")
	return uuid.NewSHA1(recordNamespace, []byte(name)).String()
}

// BonusRecordKey identifies the premium record of the index-th bonus paid in month
func BonusRecordKey(companyID, empNo string, month dateutil.YearMonth, index int) string {
	return RecordKey(companyID, empNo, month, domain.CalculationMethod(string(domain.MethodBonus)+"#"+strconv.Itoa(index)))
}
