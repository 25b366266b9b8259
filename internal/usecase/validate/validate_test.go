package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"+7(999)123-45-67", true},
		{" +7(999)123-45-67 ", true},
		{"89991234567", false},
		{"+79991234567", false},
		{"+7(999)1234567", false},
		{"+8(999)123-45-67", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := Phone(tt.phone)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPhone)
			}
		})
	}
}

func TestParseRegistration(t *testing.T) {
	draft, err := ParseRegistration("\n Иванов \nИван\n\nИванович\n1990-05-01\nivanov\nsecret\nлишняя строка\n")
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationDraft{
		LastName:   "Иванов",
		FirstName:  "Иван",
		MiddleName: "Иванович",
		BirthDate:  "1990-05-01",
		Login:      "ivanov",
		Password:   "secret",
	}, draft)
}

func TestParseRegistrationErrors(t *testing.T) {
	_, err := ParseRegistration("Иванов\nИван\nИванович\n1990-05-01\nivanov")
	assert.ErrorIs(t, err, ErrNotEnoughLines)

	_, err = ParseRegistration("Иванов\nИван\nИванович\n01.05.1990\nivanov\nsecret")
	assert.ErrorIs(t, err, ErrInvalidBirthDate)

	_, err = ParseRegistration("Иванов\nИван\nИванович\n1990-02-30\nivanov\nsecret")
	assert.ErrorIs(t, err, ErrInvalidBirthDate)
}

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials("  ivanov \n\n secret ")
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{Login: "ivanov", Password: "secret"}, creds)

	_, err = ParseCredentials("ivanov")
	assert.ErrorIs(t, err, ErrNotEnoughLines)
}
