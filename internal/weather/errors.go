package weather

import "errors"

var (
	// ErrForecastUnavailable is returned for any failed fetch or normalization.
	// The underlying kind (ErrProviderUnavailable or ErrMalformedPayload) stays matchable.
	ErrForecastUnavailable = errors.New("forecast unavailable")

	// ErrProviderUnavailable covers transport, auth and upstream status failures.
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// ErrMalformedPayload is returned when a response lacks its required top-level structure.
	ErrMalformedPayload = errors.New("malformed provider payload")
)
