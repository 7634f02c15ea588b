package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (source, source_id, product_title, category, rating, `text`, raw)\nVALUES "

// Use VALUES(col) for broad compatibility; COALESCE keeps old value if new is NULL.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  product_title = VALUES(product_title),\n" +
	"  category      = VALUES(category),\n" +
	"  rating        = VALUES(rating),\n" +
	"  `text`        = COALESCE(VALUES(`text`), reviews.`text`),\n" +
	"  raw           = COALESCE(VALUES(raw), reviews.raw),\n" +
	"  updated_at    = CURRENT_TIMESTAMP\n"

const insertRejectSQL = `
INSERT INTO load_rejects (source, category, reason)
VALUES (?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// The aggregator re-reads the table per (source, category); rows come back in
// insertion order so derived views keep a stable first-encountered order.
const listReviewsSQL = "SELECT id, source, source_id, product_title, category, rating, `text`\n" +
	"FROM reviews\n" +
	"WHERE source = ? AND (? = '' OR category = ?)\n" +
	"ORDER BY id"

const countReviewsSQL = `SELECT COUNT(*) FROM reviews WHERE source = ?`
