package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

func validInquiry() models.OrderInquiry {
	return models.OrderInquiry{
		ProductID:   bson.NewObjectID(),
		ProductName: "Jacket",
		CustomerData: models.CustomerData{
			Name:      "Amina Belkacem",
			Phone:     "+33612345678",
			Reference: "instagram-ad",
		},
		Quantity:   1,
		TotalPrice: 120,
		Status:     models.InquiryStatusPending,
	}
}

func TestValidateInquiryAcceptsValidInquiry(t *testing.T) {
	inq := validInquiry()
	assert.Empty(t, validateInquiry(&inq))
}

func TestValidateCustomerDataPhonePattern(t *testing.T) {
	valid := []string{"+33612345678", "33612345678", "9", "+12025550143"}
	for _, phone := range valid {
		assert.Empty(t, validateCustomerData(models.CustomerData{
			Name: "A", Phone: phone, Reference: "r",
		}), "phone %q should be accepted", phone)
	}

	invalid := []string{"", "0612345678", "+0612", "12345678901234567", "+33 6 12"}
	for _, phone := range invalid {
		fields := validateCustomerData(models.CustomerData{
			Name: "A", Phone: phone, Reference: "r",
		})
		require.Len(t, fields, 1, "phone %q should be rejected", phone)
		assert.Equal(t, "customerData.phone", fields[0].Field)
	}
}

func TestValidateCustomerDataNameLengthCountsRunes(t *testing.T) {
	cd := models.CustomerData{
		Name:      strings.Repeat("é", customerNameMaxLen),
		Phone:     "+33612345678",
		Reference: "instagram-ad",
	}
	assert.Empty(t, validateCustomerData(cd))

	cd.Name = strings.Repeat("é", customerNameMaxLen+1)
	fields := validateCustomerData(cd)
	require.Len(t, fields, 1)
	assert.Equal(t, "customerData.name", fields[0].Field)
}

func TestValidateInquiryBounds(t *testing.T) {
	inq := validInquiry()
	inq.Quantity = 0
	inq.TotalPrice = -1
	inq.Status = "shipped"
	inq.Notes = strings.Repeat("n", 1001)

	fields := validateInquiry(&inq)
	assert.ElementsMatch(t,
		[]string{"quantity", "totalPrice", "status", "notes"},
		fieldNames(fields))
}

func TestBuildInquiryFilterRejectsUnknownStatus(t *testing.T) {
	_, err := buildInquiryFilter(InquiryQuery{Status: "shipped"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "status", ve.Fields[0].Field)
}

func TestBuildInquiryFilterSubstringMatchesAreCaseInsensitive(t *testing.T) {
	filter, err := buildInquiryFilter(InquiryQuery{Phone: "+336", Name: "ami"})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$regex": `\+336`, "$options": "i"}, filter["customerData.phone"])
	assert.Equal(t, bson.M{"$regex": "ami", "$options": "i"}, filter["customerData.name"])
}

func TestBuildInquiryFilterDateRangeInclusive(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	filter, err := buildInquiryFilter(InquiryQuery{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$gte": start, "$lte": end}, filter["createdAt"])
}

func TestBuildInquiryFilterProductID(t *testing.T) {
	oid := bson.NewObjectID()
	filter, err := buildInquiryFilter(InquiryQuery{ProductID: oid.Hex()})
	require.NoError(t, err)
	assert.Equal(t, oid, filter["productId"])

	_, err = buildInquiryFilter(InquiryQuery{ProductID: "not-an-id"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestApplyInquiryPatchKeepsSnapshotFrozen(t *testing.T) {
	inq := validInquiry()
	originalName := inq.ProductName
	originalProduct := inq.ProductID

	notes := "called back, interested"
	status := string(models.InquiryStatusContacted)
	applyInquiryPatch(&inq, dto.UpdateInquiryDTO{
		Status: &status,
		Notes:  &notes,
	})

	assert.Equal(t, originalName, inq.ProductName)
	assert.Equal(t, originalProduct, inq.ProductID)
	assert.Equal(t, models.InquiryStatusContacted, inq.Status)
	assert.Equal(t, notes, inq.Notes)
}

func TestBuildInquirySetOnlyIncludesSuppliedFields(t *testing.T) {
	now := time.Now().UTC()
	qty := 2
	set := buildInquirySet(dto.UpdateInquiryDTO{Quantity: &qty}, now)

	assert.Equal(t, bson.M{"updatedAt": now, "quantity": 2}, set)
}
