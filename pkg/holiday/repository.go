package holiday

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Repository interface {
	// ExistsOnDate reports whether a holiday row exists for the company on
	// the given calendar date. The check is a half-open range containment
	// [date, date+1d) so the time-of-day of stored rows never matters.
	ExistsOnDate(ctx context.Context, companyId int, date time.Time) (bool, error)
	Store(ctx context.Context, companyId int, holiday BankHoliday) (int, error)
	GetByYear(ctx context.Context, companyId int, year int) ([]BankHoliday, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ExistsOnDate(ctx context.Context, companyId int, date time.Time) (bool, error) {
	dayStart := date.Format(dateLayout)
	nextDayStart := date.AddDate(0, 0, 1).Format(dateLayout)

	query := `SELECT COUNT(1) FROM bank_holiday WHERE company_id = ? AND date >= ? AND date < ?`
	row := r.db.QueryRowContext(ctx, query, companyId, dayStart, nextDayStart)

	var count int
	if err := row.Scan(&count); err != nil {
		err := fmt.Errorf("could not query bank holidays: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, companyId int, holiday BankHoliday) (int, error) {
	query := `INSERT INTO bank_holiday (
                    company_id,
                    name,
                    date,
                    recurring
				) VALUES (?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	recurring := 0
	if holiday.Recurring {
		recurring = 1
	}

	result, err := stmt.ExecContext(ctx, companyId, holiday.Name, holiday.Date.Format(dateLayout), recurring)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r *RepositoryImpl) GetByYear(ctx context.Context, companyId int, year int) ([]BankHoliday, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	nextYearStart := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)

	query := `SELECT id, company_id, name, date, recurring
	          FROM bank_holiday
	          WHERE company_id = ? AND date >= ? AND date < ?
	          ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, companyId, yearStart, nextYearStart)
	if err != nil {
		err := fmt.Errorf("could not query bank holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	holidays := make([]BankHoliday, 0, 10)
	for rows.Next() {
		var holiday BankHoliday
		var dateString string
		var recurring int
		if err := rows.Scan(&holiday.ID, &holiday.CompanyId, &holiday.Name, &dateString, &recurring); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.Parse(dateLayout, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse holiday date: %w", err)
			log.Error(err)
			return nil, err
		}
		holiday.Date = date
		holiday.Recurring = recurring == 1
		holidays = append(holidays, holiday)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return holidays, nil
}
