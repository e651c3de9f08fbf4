package utils

import "time"

// BookingSessionTTL is how long an untouched booking draft survives in the
// session store before it expires.
const BookingSessionTTL = 30 * time.Minute

// appointmentListCachePrefix keys the cached per-patient appointment list.
const appointmentListCachePrefix = "appointments:"

// AppointmentListCacheKey returns the cache key for a patient's
// appointment list.
func AppointmentListCacheKey(patientID string) string {
	return appointmentListCachePrefix + patientID
}
