// Package storage persists disclosure records in SQLite via gorm. Inserts
// are idempotent on each record's natural key (accession number or external
// ID), so re-scraping the same filings is safe.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"insiderwire/internal/analyzer"
	"insiderwire/internal/models"
)

const dateLayout = "2006-01-02"

// Store wraps the database handle. Safe for concurrent use.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithNow overrides the clock used for date-window queries, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. Use ":memory:" for an ephemeral database.
func Open(path string, opts ...Option) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.InsiderTrade{},
		&models.CongressTrade{},
		&models.FundFiling{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InsertInsiderTrade inserts a trade, skipping duplicates on accession
// number. Returns whether a new row was created.
func (s *Store) InsertInsiderTrade(t *models.InsiderTrade) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(t)
	if res.Error != nil {
		return false, fmt.Errorf("insert insider trade %s: %w", t.AccessionNumber, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// InsertCongressTrade inserts a congressional trade, skipping duplicates on
// external ID.
func (s *Store) InsertCongressTrade(t *models.CongressTrade) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(t)
	if res.Error != nil {
		return false, fmt.Errorf("insert congress trade %s: %w", t.ExternalID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// InsertFundFiling inserts a 13F filing, skipping duplicates on accession
// number.
func (s *Store) InsertFundFiling(f *models.FundFiling) (bool, error) {
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, fmt.Errorf("insert fund filing %s: %w", f.AccessionNumber, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RecentActivity returns same-direction trades on a ticker filed within the
// last windowDays, excluding the given accession number. Implements
// analyzer.Lookup.
func (s *Store) RecentActivity(ticker string, action models.Action, windowDays int, excludeAccession string) ([]analyzer.ActivityRef, error) {
	cutoff := s.now().AddDate(0, 0, -windowDays).Format(dateLayout)

	var rows []models.InsiderTrade
	err := s.db.
		Select("insider_cik", "filing_date").
		Where("ticker = ? AND action = ? AND filing_date >= ? AND accession_number <> ?",
			ticker, action, cutoff, excludeAccession).
		Order("filing_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent activity for %s: %w", ticker, err)
	}

	refs := make([]analyzer.ActivityRef, 0, len(rows))
	for _, r := range rows {
		refs = append(refs, analyzer.ActivityRef{ActorID: r.InsiderCIK, FiledAt: r.FilingDate})
	}
	return refs, nil
}

// InsiderHistory returns an insider's stored trades, most recent first,
// optionally restricted to one ticker. Implements analyzer.Lookup.
func (s *Store) InsiderHistory(insiderCIK, ticker string) ([]models.InsiderTrade, error) {
	q := s.db.Where("insider_cik = ?", insiderCIK)
	if ticker != "" {
		q = q.Where("ticker = ?", ticker)
	}

	var rows []models.InsiderTrade
	if err := q.Order("filing_date DESC").Limit(100).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("history for insider %s: %w", insiderCIK, err)
	}
	return rows, nil
}

// UnpostedInsiderTrades returns trades not yet posted to Twitter, at or above
// the given tier quality (tier 1 is best), strongest first.
func (s *Store) UnpostedInsiderTrades(maxTier, limit int) ([]models.InsiderTrade, error) {
	var rows []models.InsiderTrade
	err := s.db.
		Where("twitter_posted = ? AND tier <= ?", false, maxTier).
		Order("virality_score DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("unposted insider trades: %w", err)
	}
	return rows, nil
}

// UnpostedCongressTrades returns unposted congressional trades at or above
// the given tier quality, strongest first.
func (s *Store) UnpostedCongressTrades(maxTier, limit int) ([]models.CongressTrade, error) {
	var rows []models.CongressTrade
	err := s.db.
		Where("twitter_posted = ? AND tier <= ?", false, maxTier).
		Order("virality_score DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("unposted congress trades: %w", err)
	}
	return rows, nil
}

// UnpostedFundFilings returns unposted 13F filings at or above the given tier
// quality, strongest first.
func (s *Store) UnpostedFundFilings(maxTier, limit int) ([]models.FundFiling, error) {
	var rows []models.FundFiling
	err := s.db.
		Where("twitter_posted = ? AND tier <= ?", false, maxTier).
		Order("virality_score DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("unposted fund filings: %w", err)
	}
	return rows, nil
}

// MarkInsiderTwitterPosted records a successful Twitter post.
func (s *Store) MarkInsiderTwitterPosted(id uint, postID string) error {
	return s.db.Model(&models.InsiderTrade{}).Where("id = ?", id).Updates(map[string]any{
		"twitter_posted":    true,
		"twitter_post_id":   postID,
		"twitter_posted_at": s.now().Format(time.RFC3339),
	}).Error
}

// MarkInsiderDiscordPosted records a successful Discord post.
func (s *Store) MarkInsiderDiscordPosted(id uint) error {
	return s.db.Model(&models.InsiderTrade{}).Where("id = ?", id).Updates(map[string]any{
		"discord_posted":    true,
		"discord_posted_at": s.now().Format(time.RFC3339),
	}).Error
}

// MarkCongressTwitterPosted records a successful Twitter post.
func (s *Store) MarkCongressTwitterPosted(id uint, postID string) error {
	return s.db.Model(&models.CongressTrade{}).Where("id = ?", id).Updates(map[string]any{
		"twitter_posted":  true,
		"twitter_post_id": postID,
	}).Error
}

// MarkFundTwitterPosted records a successful Twitter post.
func (s *Store) MarkFundTwitterPosted(id uint) error {
	return s.db.Model(&models.FundFiling{}).Where("id = ?", id).
		Update("twitter_posted", true).Error
}

// InsiderTradesSince returns trades filed on or after the given date,
// strongest first. Used by the daily roundup.
func (s *Store) InsiderTradesSince(date string, limit int) ([]models.InsiderTrade, error) {
	var rows []models.InsiderTrade
	err := s.db.
		Where("filing_date >= ?", date).
		Order("virality_score DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("insider trades since %s: %w", date, err)
	}
	return rows, nil
}

// TickerActivity returns all stored insider trades on one ticker, newest
// filing first. Used by the dashboard's per-ticker view.
func (s *Store) TickerActivity(ticker string, limit int) ([]models.InsiderTrade, error) {
	var rows []models.InsiderTrade
	err := s.db.
		Where("ticker = ?", ticker).
		Order("filing_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("activity for %s: %w", ticker, err)
	}
	return rows, nil
}

// RecentInsiderTrades returns the newest stored trades.
func (s *Store) RecentInsiderTrades(limit int) ([]models.InsiderTrade, error) {
	var rows []models.InsiderTrade
	err := s.db.Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent insider trades: %w", err)
	}
	return rows, nil
}

// Stats summarizes the database for the status command and dashboard.
type Stats struct {
	InsiderTrades  int64 `json:"insider_trades"`
	CongressTrades int64 `json:"congress_trades"`
	FundFilings    int64 `json:"fund_filings"`

	UnpostedTier1 int64 `json:"unposted_tier1"`
	TwitterPosted int64 `json:"twitter_posted"`

	AvgViralityScore float64 `json:"avg_virality_score"`
}

// Summary computes the current Stats.
func (s *Store) Summary() (*Stats, error) {
	var st Stats

	if err := s.db.Model(&models.InsiderTrade{}).Count(&st.InsiderTrades).Error; err != nil {
		return nil, fmt.Errorf("count insider trades: %w", err)
	}
	if err := s.db.Model(&models.CongressTrade{}).Count(&st.CongressTrades).Error; err != nil {
		return nil, fmt.Errorf("count congress trades: %w", err)
	}
	if err := s.db.Model(&models.FundFiling{}).Count(&st.FundFilings).Error; err != nil {
		return nil, fmt.Errorf("count fund filings: %w", err)
	}
	if err := s.db.Model(&models.InsiderTrade{}).
		Where("twitter_posted = ? AND tier = ?", false, 1).
		Count(&st.UnpostedTier1).Error; err != nil {
		return nil, fmt.Errorf("count unposted tier-1: %w", err)
	}
	if err := s.db.Model(&models.InsiderTrade{}).
		Where("twitter_posted = ?", true).
		Count(&st.TwitterPosted).Error; err != nil {
		return nil, fmt.Errorf("count posted: %w", err)
	}

	if st.InsiderTrades > 0 {
		row := s.db.Model(&models.InsiderTrade{}).
			Select("AVG(virality_score)").Row()
		if err := row.Scan(&st.AvgViralityScore); err != nil {
			return nil, fmt.Errorf("average score: %w", err)
		}
	}
	return &st, nil
}
