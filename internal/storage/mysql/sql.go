package mysql

const upsertAnalysisSQL = `
INSERT INTO analyses
  (id, location, lat, lng, business_type, target_demographics, recommendation, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
ON DUPLICATE KEY UPDATE
  location            = VALUES(location),
  lat                 = VALUES(lat),
  lng                 = VALUES(lng),
  business_type       = VALUES(business_type),
  target_demographics = VALUES(target_demographics),
  recommendation      = VALUES(recommendation),
  updated_at          = CURRENT_TIMESTAMP
`

const insertEventSQL = `
INSERT INTO analytics_events (event_type, data)
VALUES (?, ?)
`

const insertMissSQL = `
INSERT INTO fetch_misses (endpoint, http_status, reason)
VALUES (?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getAnalysisSQL = `
SELECT
  id,
  location,
  lat,
  lng,
  business_type,
  target_demographics,
  recommendation,
  created_at
FROM analyses
WHERE id = ?
`
