package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCalculateRating(t *testing.T) {
	assert.Equal(t, Rating{}, CalculateRating(nil))
	assert.Equal(t, Rating{Average: 4.0, Count: 1}, CalculateRating([]CarReview{{Rating: 4}}))
	assert.Equal(t, Rating{Average: 4.5, Count: 2}, CalculateRating([]CarReview{{Rating: 4}, {Rating: 5}}))
	// 13/3 = 4.333...
	assert.Equal(t, Rating{Average: 4.3, Count: 3}, CalculateRating([]CarReview{{Rating: 5}, {Rating: 4}, {Rating: 4}}))
}

func TestCar_AddReview(t *testing.T) {
	car := &Car{}
	first, second := uuid.New(), uuid.New()

	car.AddReview(CarReview{UserID: first, Rating: 4})
	assert.Equal(t, 4.0, car.Rating.Average)
	assert.Equal(t, 1, car.Rating.Count)

	car.AddReview(CarReview{UserID: second, Rating: 5})
	assert.Equal(t, 4.5, car.Rating.Average)
	assert.Equal(t, 2, car.Rating.Count)

	assert.True(t, car.HasReviewFrom(first))
	assert.False(t, car.HasReviewFrom(uuid.New()))
}

func TestCar_IsBookable(t *testing.T) {
	assert.True(t, (&Car{Availability: true, IsActive: true}).IsBookable())
	assert.False(t, (&Car{Availability: false, IsActive: true}).IsBookable())
	assert.False(t, (&Car{Availability: true, IsActive: false}).IsBookable())
}

func TestCar_EnsureMainImage(t *testing.T) {
	car := &Car{Images: []CarImage{{URL: "a"}, {URL: "b"}}}
	car.EnsureMainImage()
	assert.True(t, car.Images[0].IsMain)
	assert.False(t, car.Images[1].IsMain)

	car = &Car{Images: []CarImage{{URL: "a"}, {URL: "b", IsMain: true}}}
	car.EnsureMainImage()
	assert.False(t, car.Images[0].IsMain)

	empty := &Car{}
	empty.EnsureMainImage()
	assert.Empty(t, empty.Images)
}

func TestNormalizeLicensePlate(t *testing.T) {
	assert.Equal(t, "NYC123", NormalizeLicensePlate("  nyc123 "))
}
