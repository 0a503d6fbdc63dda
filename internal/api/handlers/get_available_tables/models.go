package get_available_tables

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	getAvailableTables "github.com/tablebook/reservation-service/internal/usecase/get_available_tables"
	"github.com/tablebook/reservation-service/pkg/types"
)

// AvailableTablesResponse HTTP response model
type AvailableTablesResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Zone      string `json:"zone"`
	Tables    []int  `json:"tables"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, timeStr, zone string) (*getAvailableTables.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTables.Request{
		Date:      date,
		StartTime: startTime,
		Zone:      zone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *getAvailableTables.Request, resp *getAvailableTables.Response) *AvailableTablesResponse {
	tables := resp.Tables
	if tables == nil {
		tables = []int{}
	}

	return &AvailableTablesResponse{
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		Zone:      req.Zone,
		Tables:    tables,
	}
}
