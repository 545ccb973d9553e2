// Package noaa implements queries to the NOAA CO-OPS API to retrieve tide
// predictions. Predictions are requested one calendar day at a time for a
// single station (see PredictionQuery). A successful query returns a list of
// predictions with time and height, and for high/low queries whether each is
// high or low. All times are station-local.
package noaa
