package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	apperrors "github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/errors"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

type filingRepository struct {
	db dbExecutor
}

// NewFilingRepository creates a Postgres-backed filing repository
func NewFilingRepository(db dbExecutor) FilingRepository {
	return &filingRepository{db: db}
}

// Upsert inserts a filing or, when the accession already exists, replaces
// its extraction and scoring columns. Re-running enrichment over the same
// filings is therefore idempotent.
func (r *filingRepository) Upsert(filing *models.Filing) error {
	filing.UpdatedAt = time.Now().UTC()

	textMatches, err := json.Marshal(filing.TextMatches)
	if err != nil {
		return apperrors.ServiceError("failed to encode text matches", err).
			WithOperation("FilingRepository.Upsert")
	}
	if filing.TextMatches == nil {
		textMatches = []byte("{}")
	}

	query := `
		INSERT INTO filings (accession, event_id, cik, form, filing_date,
			ratio_num, ratio_den, log_ratio, announce_date, effective_date,
			effective_time_text, items, compliance_flag, financing_flag,
			unregistered_sales_flag, rounding_up_flag, share_change_flag,
			listing_deficiency_flag, text_matches, document_url,
			score, tier, candidate_announce_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (accession) DO UPDATE SET
			event_id = EXCLUDED.event_id,
			form = EXCLUDED.form,
			filing_date = EXCLUDED.filing_date,
			ratio_num = EXCLUDED.ratio_num,
			ratio_den = EXCLUDED.ratio_den,
			log_ratio = EXCLUDED.log_ratio,
			announce_date = EXCLUDED.announce_date,
			effective_date = EXCLUDED.effective_date,
			effective_time_text = EXCLUDED.effective_time_text,
			items = EXCLUDED.items,
			compliance_flag = EXCLUDED.compliance_flag,
			financing_flag = EXCLUDED.financing_flag,
			unregistered_sales_flag = EXCLUDED.unregistered_sales_flag,
			rounding_up_flag = EXCLUDED.rounding_up_flag,
			share_change_flag = EXCLUDED.share_change_flag,
			listing_deficiency_flag = EXCLUDED.listing_deficiency_flag,
			text_matches = EXCLUDED.text_matches,
			document_url = EXCLUDED.document_url,
			score = EXCLUDED.score,
			tier = EXCLUDED.tier,
			candidate_announce_date = EXCLUDED.candidate_announce_date,
			updated_at = EXCLUDED.updated_at`
	_, err = r.db.Exec(query,
		filing.Accession, filing.EventID, filing.CIK, filing.Form, filing.FilingDate,
		filing.RatioNum, filing.RatioDen, filing.LogRatio,
		filing.AnnounceDate, filing.EffectiveDate, filing.EffectiveTimeText,
		pq.Array(filing.Items),
		filing.ComplianceFlag, filing.FinancingFlag, filing.UnregisteredSalesFlag,
		filing.RoundingUpFlag, filing.ShareChangeFlag, filing.ListingDeficiencyFlag,
		textMatches, filing.DocumentURL,
		filing.Score, filing.Tier, filing.CandidateAnnounceDate,
		filing.UpdatedAt)
	if err != nil {
		return apperrors.DatabaseError("failed to upsert filing", err).
			WithOperation("FilingRepository.Upsert")
	}
	return nil
}

func (r *filingRepository) GetByEvent(eventID uuid.UUID) ([]*models.Filing, error) {
	query := `
		SELECT accession, event_id, cik, form, filing_date,
			ratio_num, ratio_den, log_ratio, announce_date, effective_date,
			effective_time_text, items, compliance_flag, financing_flag,
			unregistered_sales_flag, rounding_up_flag, share_change_flag,
			listing_deficiency_flag, text_matches, document_url,
			score, tier, candidate_announce_date, updated_at
		FROM filings
		WHERE event_id = $1
		ORDER BY filing_date, accession`
	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to query filings", err).
			WithOperation("FilingRepository.GetByEvent")
	}
	defer rows.Close()

	var filings []*models.Filing
	for rows.Next() {
		filing, err := scanFiling(rows)
		if err != nil {
			return nil, apperrors.DatabaseError("failed to scan filing", err)
		}
		filings = append(filings, filing)
	}
	return filings, rows.Err()
}

func (r *filingRepository) CountByEvent(eventID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM filings WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, apperrors.DatabaseError("failed to count filings", err).
			WithOperation("FilingRepository.CountByEvent")
	}
	return count, nil
}

func (r *filingRepository) DeleteByEvent(eventID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM filings WHERE event_id = $1`, eventID)
	if err != nil {
		return apperrors.DatabaseError("failed to delete filings", err).
			WithOperation("FilingRepository.DeleteByEvent")
	}
	return nil
}

func scanFiling(rows *sql.Rows) (*models.Filing, error) {
	var (
		filing        models.Filing
		ratioNum      sql.NullInt64
		ratioDen      sql.NullInt64
		logRatio      sql.NullFloat64
		announceDate  sql.NullTime
		effectiveDate sql.NullTime
		candidateDate sql.NullTime
		score         sql.NullInt64
		items         pq.StringArray
		textMatches   []byte
	)
	err := rows.Scan(
		&filing.Accession, &filing.EventID, &filing.CIK, &filing.Form, &filing.FilingDate,
		&ratioNum, &ratioDen, &logRatio, &announceDate, &effectiveDate,
		&filing.EffectiveTimeText, &items,
		&filing.ComplianceFlag, &filing.FinancingFlag, &filing.UnregisteredSalesFlag,
		&filing.RoundingUpFlag, &filing.ShareChangeFlag, &filing.ListingDeficiencyFlag,
		&textMatches, &filing.DocumentURL,
		&score, &filing.Tier, &candidateDate, &filing.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if ratioNum.Valid {
		v := int(ratioNum.Int64)
		filing.RatioNum = &v
	}
	if ratioDen.Valid {
		v := int(ratioDen.Int64)
		filing.RatioDen = &v
	}
	if logRatio.Valid {
		filing.LogRatio = &logRatio.Float64
	}
	if announceDate.Valid {
		filing.AnnounceDate = &announceDate.Time
	}
	if effectiveDate.Valid {
		filing.EffectiveDate = &effectiveDate.Time
	}
	if candidateDate.Valid {
		filing.CandidateAnnounceDate = &candidateDate.Time
	}
	if score.Valid {
		v := int(score.Int64)
		filing.Score = &v
	}
	filing.Items = []string(items)
	if len(textMatches) > 0 {
		if err := json.Unmarshal(textMatches, &filing.TextMatches); err != nil {
			return nil, err
		}
	}
	return &filing, nil
}
