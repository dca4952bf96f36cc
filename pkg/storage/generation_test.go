package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"unwrapped_go/models"
)

// dummyDriver предоставляет минимальную реализацию драйвера SQL
// для перехвата выполняемых запросов без реальной БД.
type dummyDriver struct{}

type dummyConn struct{}

// queriedStatements хранит все запросы Query, чтобы проверять их содержимое.
var queriedStatements []string

func (d *dummyDriver) Open(name string) (driver.Conn, error) { return &dummyConn{}, nil }

func (c *dummyConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (c *dummyConn) Close() error              { return nil }
func (c *dummyConn) Begin() (driver.Tx, error) { return nil, errors.New("not implemented") }

// QueryContext сохраняет текст запроса и отдаёт одну строку с данными,
// подходящими под конкретный запрос: RETURNING id, created_at для
// вставки и единственный счётчик для COUNT.
func (c *dummyConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	queriedStatements = append(queriedStatements, query)
	if strings.Contains(query, "COUNT(*)") {
		return &dummyRows{cols: []string{"count"}}, nil
	}
	return &dummyRows{cols: []string{"id", "created_at"}}, nil
}

type dummyRows struct {
	cols []string
	done bool
}

func (r *dummyRows) Columns() []string { return r.cols }
func (r *dummyRows) Close() error      { return nil }

func (r *dummyRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = int64(1)
	if len(dest) > 1 {
		dest[1] = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return nil
}

func init() {
	sql.Register("dummy", &dummyDriver{})
}

// TestSaveGeneration проверяет, что запись журнала сохраняет длительность
// в миллисекундах и получает id с датой из RETURNING.
func TestSaveGeneration(t *testing.T) {
	queriedStatements = nil
	db, err := sql.Open("dummy", "")
	if err != nil {
		t.Fatalf("не удалось открыть фейковую БД: %v", err)
	}
	storageDB := &DB{Conn: db}

	saved, err := storageDB.SaveGeneration(models.Generation{
		Channel:       "mychannel",
		Year:          2024,
		MessagesCount: 120,
		Duration:      1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("вставка завершилась ошибкой: %v", err)
	}
	if saved.ID != 1 {
		t.Fatalf("ожидался id 1 из RETURNING, получено %d", saved.ID)
	}

	if len(queriedStatements) != 1 {
		t.Fatalf("ожидался один запрос, выполнено %d", len(queriedStatements))
	}
	if !strings.Contains(queriedStatements[0], "INSERT INTO generations") {
		t.Fatalf("запрос не вставляет в generations: %s", queriedStatements[0])
	}
	if !strings.Contains(queriedStatements[0], "duration_ms") {
		t.Fatalf("запрос не сохраняет длительность: %s", queriedStatements[0])
	}
}

// TestCountGenerations проверяет подсчёт отчётов за период.
func TestCountGenerations(t *testing.T) {
	queriedStatements = nil
	db, err := sql.Open("dummy", "")
	if err != nil {
		t.Fatalf("не удалось открыть фейковую БД: %v", err)
	}
	storageDB := &DB{Conn: db}

	count, err := storageDB.CountGenerations("mychannel", time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("подсчёт завершился ошибкой: %v", err)
	}
	if count != 1 {
		t.Fatalf("ожидался счётчик 1, получено %d", count)
	}
	if len(queriedStatements) != 1 || !strings.Contains(queriedStatements[0], "FROM generations") {
		t.Fatalf("неожиданные запросы: %v", queriedStatements)
	}
}
