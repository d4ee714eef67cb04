package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelichko/locallibrary/internal/validator"
)

func TestValidateRenewalDate(t *testing.T) {
	today := NewDate(2024, time.January, 10)

	testCases := []struct {
		name        string
		date        Date
		wantValid   bool
		wantMessage string
	}{
		{
			name:        "date in the past is rejected",
			date:        NewDate(2024, time.January, 9),
			wantValid:   false,
			wantMessage: "invalid date - renewal in past",
		},
		{
			name:        "date more than four weeks ahead is rejected",
			date:        NewDate(2024, time.February, 10),
			wantValid:   false,
			wantMessage: "invalid date - renewal more than 4 weeks ahead",
		},
		{
			name:      "date inside the window is accepted",
			date:      NewDate(2024, time.January, 20),
			wantValid: true,
		},
		{
			name:      "today itself is accepted",
			date:      NewDate(2024, time.January, 10),
			wantValid: true,
		},
		{
			name:      "exactly four weeks ahead is accepted",
			date:      NewDate(2024, time.February, 7),
			wantValid: true,
		},
		{
			name:        "one day past four weeks is rejected",
			date:        NewDate(2024, time.February, 8),
			wantValid:   false,
			wantMessage: "invalid date - renewal more than 4 weeks ahead",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateRenewalDate(v, today, tc.date)
			assert.Equal(t, tc.wantValid, v.Valid())
			if !tc.wantValid {
				assert.Equal(t, tc.wantMessage, v.Errors["due_back"])
			}
		})
	}
}

func TestProposedRenewalDate(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	proposed := ProposedRenewalDate(today)

	// The default proposal is three weeks out and always passes validation.
	assert.Equal(t, NewDate(2024, time.January, 31), proposed)

	v := validator.New()
	ValidateRenewalDate(v, today, proposed)
	assert.True(t, v.Valid())
}

func TestIsOverdueOn(t *testing.T) {
	today := NewDate(2024, time.January, 10)

	testCases := []struct {
		name     string
		dueBack  *Date
		expected bool
	}{
		{
			name:     "no due date is never overdue",
			dueBack:  nil,
			expected: false,
		},
		{
			name:     "due yesterday is overdue",
			dueBack:  ptrDate(NewDate(2024, time.January, 9)),
			expected: true,
		},
		{
			name:     "due today is not overdue",
			dueBack:  ptrDate(NewDate(2024, time.January, 10)),
			expected: false,
		},
		{
			name:     "due tomorrow is not overdue",
			dueBack:  ptrDate(NewDate(2024, time.January, 11)),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instance := &BookInstance{DueBack: tc.dueBack}
			assert.Equal(t, tc.expected, instance.IsOverdueOn(today))
		})
	}
}

func TestApplyDefaultStatus(t *testing.T) {
	// A copy created without an explicit status starts in maintenance.
	instance := &BookInstance{}
	instance.applyDefaultStatus()
	assert.Equal(t, StatusMaintenance, instance.Status)

	// An explicit status is left alone.
	instance = &BookInstance{Status: StatusReserved}
	instance.applyDefaultStatus()
	assert.Equal(t, StatusReserved, instance.Status)
}

func TestValidInstanceStatus(t *testing.T) {
	assert.True(t, ValidInstanceStatus(StatusMaintenance))
	assert.True(t, ValidInstanceStatus(StatusOnLoan))
	assert.True(t, ValidInstanceStatus(StatusAvailable))
	assert.True(t, ValidInstanceStatus(StatusReserved))
	assert.False(t, ValidInstanceStatus("lost"))
	assert.False(t, ValidInstanceStatus(""))
}

func TestValidateBookInstance(t *testing.T) {
	due := ptrDate(NewDate(2024, time.February, 1))

	testCases := []struct {
		name      string
		instance  *BookInstance
		wantValid bool
		wantField string
	}{
		{
			name:      "valid available copy",
			instance:  &BookInstance{Imprint: "Penguin Classics, 2003", Status: StatusAvailable},
			wantValid: true,
		},
		{
			name:      "valid loan with due date",
			instance:  &BookInstance{Imprint: "Penguin Classics, 2003", Status: StatusOnLoan, DueBack: due},
			wantValid: true,
		},
		{
			name:      "missing imprint",
			instance:  &BookInstance{Status: StatusAvailable},
			wantValid: false,
			wantField: "imprint",
		},
		{
			name:      "unknown status",
			instance:  &BookInstance{Imprint: "Penguin Classics, 2003", Status: "lost"},
			wantValid: false,
			wantField: "status",
		},
		{
			name:      "on loan without a due date",
			instance:  &BookInstance{Imprint: "Penguin Classics, 2003", Status: StatusOnLoan},
			wantValid: false,
			wantField: "due_back",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateBookInstance(v, tc.instance)
			assert.Equal(t, tc.wantValid, v.Valid())
			if !tc.wantValid {
				assert.Contains(t, v.Errors, tc.wantField)
			}
		})
	}
}

func ptrDate(d Date) *Date {
	return &d
}
