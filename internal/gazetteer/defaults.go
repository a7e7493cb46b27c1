package gazetteer

import "github.com/jengzang/fleetmap-backend-go/internal/models"

// Default returns a Gazetteer over the built-in tables
func Default() *Gazetteer {
	g, err := New(DefaultTables())
	if err != nil {
		panic("gazetteer: built-in tables are invalid: " + err.Error())
	}
	return g
}

// DefaultTables returns the built-in US state centroids and major-city gazetteer.
// The returned value is a fresh copy and may be modified by the caller.
func DefaultTables() Tables {
	states := make([]StateEntry, 0, len(defaultStates))
	for _, s := range defaultStates {
		c := s.centroid
		states = append(states, StateEntry{Code: s.code, Name: s.name, Centroid: &c})
	}
	return Tables{
		States: states,
		Cities: append([]CityEntry(nil), defaultCities...),
	}
}

var defaultStates = []struct {
	code     string
	name     string
	centroid models.Coordinate
}{
	{"AL", "Alabama", models.Coordinate{Lat: 32.806671, Lng: -86.791130}},
	{"AK", "Alaska", models.Coordinate{Lat: 61.370716, Lng: -152.404419}},
	{"AZ", "Arizona", models.Coordinate{Lat: 33.729759, Lng: -111.431221}},
	{"AR", "Arkansas", models.Coordinate{Lat: 34.969704, Lng: -92.373123}},
	{"CA", "California", models.Coordinate{Lat: 36.116203, Lng: -119.681564}},
	{"CO", "Colorado", models.Coordinate{Lat: 39.059811, Lng: -105.311104}},
	{"CT", "Connecticut", models.Coordinate{Lat: 41.597782, Lng: -72.755371}},
	{"DE", "Delaware", models.Coordinate{Lat: 39.318523, Lng: -75.507141}},
	{"DC", "District of Columbia", models.Coordinate{Lat: 38.897438, Lng: -77.026817}},
	{"FL", "Florida", models.Coordinate{Lat: 27.766279, Lng: -81.686783}},
	{"GA", "Georgia", models.Coordinate{Lat: 33.040619, Lng: -83.643074}},
	{"HI", "Hawaii", models.Coordinate{Lat: 21.094318, Lng: -157.498337}},
	{"ID", "Idaho", models.Coordinate{Lat: 44.240459, Lng: -114.478828}},
	{"IL", "Illinois", models.Coordinate{Lat: 40.349457, Lng: -88.986137}},
	{"IN", "Indiana", models.Coordinate{Lat: 39.849426, Lng: -86.258278}},
	{"IA", "Iowa", models.Coordinate{Lat: 42.011539, Lng: -93.210526}},
	{"KS", "Kansas", models.Coordinate{Lat: 38.526600, Lng: -96.726486}},
	{"KY", "Kentucky", models.Coordinate{Lat: 37.668140, Lng: -84.670067}},
	{"LA", "Louisiana", models.Coordinate{Lat: 31.169546, Lng: -91.867805}},
	{"ME", "Maine", models.Coordinate{Lat: 44.693947, Lng: -69.381927}},
	{"MD", "Maryland", models.Coordinate{Lat: 39.063946, Lng: -76.802101}},
	{"MA", "Massachusetts", models.Coordinate{Lat: 42.230171, Lng: -71.530106}},
	{"MI", "Michigan", models.Coordinate{Lat: 43.326618, Lng: -84.536095}},
	{"MN", "Minnesota", models.Coordinate{Lat: 45.694454, Lng: -93.900192}},
	{"MS", "Mississippi", models.Coordinate{Lat: 32.741646, Lng: -89.678696}},
	{"MO", "Missouri", models.Coordinate{Lat: 38.456085, Lng: -92.288368}},
	{"MT", "Montana", models.Coordinate{Lat: 46.921925, Lng: -110.454353}},
	{"NE", "Nebraska", models.Coordinate{Lat: 41.125370, Lng: -98.268082}},
	{"NV", "Nevada", models.Coordinate{Lat: 38.313515, Lng: -117.055374}},
	{"NH", "New Hampshire", models.Coordinate{Lat: 43.452492, Lng: -71.563896}},
	{"NJ", "New Jersey", models.Coordinate{Lat: 40.298904, Lng: -74.521011}},
	{"NM", "New Mexico", models.Coordinate{Lat: 34.840515, Lng: -106.248482}},
	{"NY", "New York", models.Coordinate{Lat: 42.165726, Lng: -74.948051}},
	{"NC", "North Carolina", models.Coordinate{Lat: 35.630066, Lng: -79.806419}},
	{"ND", "North Dakota", models.Coordinate{Lat: 47.528912, Lng: -99.784012}},
	{"OH", "Ohio", models.Coordinate{Lat: 40.388783, Lng: -82.764915}},
	{"OK", "Oklahoma", models.Coordinate{Lat: 35.565342, Lng: -96.928917}},
	{"OR", "Oregon", models.Coordinate{Lat: 44.572021, Lng: -122.070938}},
	{"PA", "Pennsylvania", models.Coordinate{Lat: 40.590752, Lng: -77.209755}},
	{"RI", "Rhode Island", models.Coordinate{Lat: 41.680893, Lng: -71.511780}},
	{"SC", "South Carolina", models.Coordinate{Lat: 33.856892, Lng: -80.945007}},
	{"SD", "South Dakota", models.Coordinate{Lat: 44.299782, Lng: -99.438828}},
	{"TN", "Tennessee", models.Coordinate{Lat: 35.747845, Lng: -86.692345}},
	{"TX", "Texas", models.Coordinate{Lat: 31.054487, Lng: -97.563461}},
	{"UT", "Utah", models.Coordinate{Lat: 40.150032, Lng: -111.862434}},
	{"VT", "Vermont", models.Coordinate{Lat: 44.045876, Lng: -72.710686}},
	{"VA", "Virginia", models.Coordinate{Lat: 37.769337, Lng: -78.169968}},
	{"WA", "Washington", models.Coordinate{Lat: 47.400902, Lng: -121.490494}},
	{"WV", "West Virginia", models.Coordinate{Lat: 38.491226, Lng: -80.954453}},
	{"WI", "Wisconsin", models.Coordinate{Lat: 44.268543, Lng: -89.616508}},
	{"WY", "Wyoming", models.Coordinate{Lat: 42.755966, Lng: -107.302490}},
}

var defaultCities = []CityEntry{
	{City: "Austin", State: "TX", Lat: 30.2672, Lng: -97.7431},
	{City: "Houston", State: "TX", Lat: 29.7604, Lng: -95.3698},
	{City: "Dallas", State: "TX", Lat: 32.7767, Lng: -96.7970},
	{City: "San Antonio", State: "TX", Lat: 29.4241, Lng: -98.4936},
	{City: "Los Angeles", State: "CA", Lat: 34.0522, Lng: -118.2437},
	{City: "San Francisco", State: "CA", Lat: 37.7749, Lng: -122.4194},
	{City: "San Diego", State: "CA", Lat: 32.7157, Lng: -117.1611},
	{City: "San Jose", State: "CA", Lat: 37.3382, Lng: -121.8863},
	{City: "Sacramento", State: "CA", Lat: 38.5816, Lng: -121.4944},
	{City: "Fresno", State: "CA", Lat: 36.7378, Lng: -119.7871},
	{City: "Seattle", State: "WA", Lat: 47.6062, Lng: -122.3321},
	{City: "Portland", State: "OR", Lat: 45.5152, Lng: -122.6784},
	{City: "Phoenix", State: "AZ", Lat: 33.4484, Lng: -112.0740},
	{City: "Denver", State: "CO", Lat: 39.7392, Lng: -104.9903},
	{City: "Chicago", State: "IL", Lat: 41.8781, Lng: -87.6298},
	{City: "New York", State: "NY", Lat: 40.7128, Lng: -74.0060},
	{City: "Boston", State: "MA", Lat: 42.3601, Lng: -71.0589},
	{City: "Atlanta", State: "GA", Lat: 33.7490, Lng: -84.3880},
	{City: "Miami", State: "FL", Lat: 25.7617, Lng: -80.1918},
	{City: "Orlando", State: "FL", Lat: 28.5383, Lng: -81.3792},
	{City: "Charlotte", State: "NC", Lat: 35.2271, Lng: -80.8431},
	{City: "Detroit", State: "MI", Lat: 42.3314, Lng: -83.0458},
	{City: "Minneapolis", State: "MN", Lat: 44.9778, Lng: -93.2650},
	{City: "Salt Lake City", State: "UT", Lat: 40.7608, Lng: -111.8910},
	{City: "Las Vegas", State: "NV", Lat: 36.1699, Lng: -115.1398},
	{City: "Nashville", State: "TN", Lat: 36.1627, Lng: -86.7816},
	{City: "Memphis", State: "TN", Lat: 35.1495, Lng: -90.0490},
	{City: "Columbus", State: "OH", Lat: 39.9612, Lng: -82.9988},
	{City: "Philadelphia", State: "PA", Lat: 39.9526, Lng: -75.1652},
	{City: "Newark", State: "NJ", Lat: 40.7357, Lng: -74.1724},
	{City: "Baltimore", State: "MD", Lat: 39.2904, Lng: -76.6122},
	{City: "Washington", State: "DC", Lat: 38.9072, Lng: -77.0369},
	{City: "Kansas City", State: "MO", Lat: 39.0997, Lng: -94.5786},
	{City: "Oklahoma City", State: "OK", Lat: 35.4676, Lng: -97.5164},
	{City: "Albuquerque", State: "NM", Lat: 35.0844, Lng: -106.6504},
}
