package entities

import (
	"database/sql"
	"time"
)

type IPB struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Status         string         `db:"status"`
	StatusDetail   string         `db:"status_detail"`
	DocKebun       sql.NullString `db:"doc_kebun"`
	DocTeknis1     sql.NullString `db:"doc_teknis_1"`
	DocTeknis2     sql.NullString `db:"doc_teknis_2"`
	DocIPB         sql.NullString `db:"doc_ipb"`
	TextIPB        sql.NullString `db:"text_ipb"`
	CreatedBy      string         `db:"created_by"`
	CreatedByLogin sql.NullString `db:"created_by_login"`
	CreatedByRole  sql.NullString `db:"created_by_role"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type Item struct {
	ID          string `db:"id"`
	IPBID       string `db:"ipb_id"`
	Description string `db:"description"`
	Quantity    int    `db:"quantity"`
	Unit        string `db:"unit"`
}
