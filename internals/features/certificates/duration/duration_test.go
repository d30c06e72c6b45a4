package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatEnglish(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{1, "hours", "1 hour"},
		{2, "hours", "2 hours"},
		{1.5, "hours", "1.5 hours"},
		{1, "minutes", "1 minute"},
		{45, "Minutes", "45 minutes"},
		{1, "days", "1 day"},
		{3, "WEEKS", "3 weeks"},
		{1, "week", "1 week"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.value, tc.unit, false), "%v %s", tc.value, tc.unit)
	}
}

func TestFormatArabicAgreement(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{1, "hours", "ساعة واحدة"},
		{2, "hours", "ساعتان"},
		{3, "hours", "3 ساعات"},
		{10, "hours", "10 ساعات"},
		{11, "hours", "11 ساعة"},
		{2.5, "hours", "2.5 ساعة"},
		{1, "minutes", "دقيقة واحدة"},
		{2, "minutes", "دقيقتان"},
		{30, "minutes", "30 دقيقة"},
		{1, "days", "يوم واحد"},
		{2, "days", "يومان"},
		{5, "days", "5 أيام"},
		{1, "weeks", "أسبوع واحد"},
		{2, "weeks", "أسبوعان"},
		{4, "weeks", "4 أسابيع"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.value, tc.unit, true), "%v %s", tc.value, tc.unit)
	}
}

func TestFormatUnknownUnitAndNonPositive(t *testing.T) {
	assert.Equal(t, "3 sessions", Format(3, "sessions", false))
	assert.Equal(t, "", Format(0, "hours", false))
	assert.Equal(t, "", Format(-2, "hours", true))
}

func TestParseUnitIsCaseAndMarkTolerant(t *testing.T) {
	for _, in := range []string{"Hours", "HOURS", " hrs ", "ساعات", "ساعة", "ساعه"} {
		u, ok := ParseUnit(in)
		assert.True(t, ok, in)
		assert.Equal(t, Hours, u, in)
	}

	// tanween on the accusative form
	u, ok := ParseUnit("يوماً")
	assert.True(t, ok)
	assert.Equal(t, Days, u)

	// alef + combining hamza above composes to أ under NFC
	u, ok = ParseUnit("\u0627\u0654سابيع")
	assert.True(t, ok)
	assert.Equal(t, Weeks, u)

	_, ok = ParseUnit("fortnight")
	assert.False(t, ok)
}

func TestFormatLegacy(t *testing.T) {
	assert.Equal(t, "3 hours", FormatLegacy("3 ساعات", false))
	assert.Equal(t, "5 ساعات", FormatLegacy("5 hours", true))
	assert.Equal(t, "ساعتان", FormatLegacy("2 Hours", true))
	assert.Equal(t, "3 weeks", FormatLegacy("٣ أسابيع", false))
	assert.Equal(t, "1.5 hours", FormatLegacy("1,5 hours", false))
	assert.Equal(t, "12 minutes", FormatLegacy("12min", false))

	for _, in := range []string{"غير محدد", "self paced", "", "about 3 hours", "3 sessions"} {
		assert.Equal(t, in, FormatLegacy(in, true), "verbatim: %q", in)
	}
}

func TestForCoursePrefersStructured(t *testing.T) {
	v := 4.0
	unit := "hours"
	legacy := "10 days"

	assert.Equal(t, "4 ساعات", ForCourse(&v, &unit, &legacy, true))
	assert.Equal(t, "10 days", ForCourse(nil, nil, &legacy, false))

	bad := "sessions"
	assert.Equal(t, "10 أيام", ForCourse(&v, &bad, &legacy, true))

	zero := 0.0
	assert.Equal(t, "10 days", ForCourse(&zero, &unit, &legacy, false))
	assert.Equal(t, "", ForCourse(nil, nil, nil, false))
}
