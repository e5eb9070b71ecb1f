package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"schooladmin/internal/repository"
)

func TestAccountRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := repository.NewAccountRepo(db)

	// Only columns present on every schema generation: the fetch must
	// also work on legacy deployments without updated_at.
	query := regexp.QuoteMeta("SELECT id,password,password_hash FROM users WHERE id=? LIMIT 1")

	mock.ExpectQuery(query).WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password", "password_hash"}).
			AddRow(7, "plain-secret", nil))

	acct, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if acct.ID != 7 {
		t.Errorf("ID = %d, want 7", acct.ID)
	}
	if !acct.Password.Valid || acct.Password.String != "plain-secret" {
		t.Errorf("Password = %+v, want plain-secret", acct.Password)
	}
	if acct.PasswordHash.Valid {
		t.Errorf("PasswordHash = %+v, want NULL", acct.PasswordHash)
	}

	mock.ExpectQuery(query).WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password", "password_hash"}))

	if _, err := repo.GetByID(context.Background(), 99); err != repository.ErrNotFound {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAccountRepo_UpdatePassword(t *testing.T) {
	withTS := regexp.QuoteMeta("UPDATE users SET password=?, password_hash=NULL, updated_at=NOW() WHERE id=?")
	withoutTS := regexp.QuoteMeta("UPDATE users SET password=?, password_hash=NULL WHERE id=?")

	t.Run("writes plaintext and clears legacy hash", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock: %v", err)
		}
		defer db.Close()
		repo := repository.NewAccountRepo(db)

		mock.ExpectExec(withTS).WithArgs("new-password", uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.UpdatePassword(context.Background(), 7, "new-password")
		if err != nil {
			t.Fatalf("UpdatePassword() error = %v", err)
		}
		if n != 1 {
			t.Errorf("affected = %d, want 1", n)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("retries without timestamp column on errno 1054", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock: %v", err)
		}
		defer db.Close()
		repo := repository.NewAccountRepo(db)

		mock.ExpectExec(withTS).WithArgs("new-password", uint64(7)).
			WillReturnError(errors.New("Error 1054 (42S22): Unknown column 'updated_at' in 'field list'"))
		mock.ExpectExec(withoutTS).WithArgs("new-password", uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.UpdatePassword(context.Background(), 7, "new-password")
		if err != nil {
			t.Fatalf("UpdatePassword() error = %v", err)
		}
		if n != 1 {
			t.Errorf("affected = %d, want 1", n)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("zero affected rows is not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock: %v", err)
		}
		defer db.Close()
		repo := repository.NewAccountRepo(db)

		mock.ExpectExec(withTS).WithArgs("same-password", uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := repo.UpdatePassword(context.Background(), 7, "same-password")
		if err != nil {
			t.Fatalf("UpdatePassword() error = %v", err)
		}
		if n != 0 {
			t.Errorf("affected = %d, want 0", n)
		}
	})

	t.Run("other errors propagate", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("sqlmock: %v", err)
		}
		defer db.Close()
		repo := repository.NewAccountRepo(db)

		mock.ExpectExec(withTS).WithArgs("new-password", uint64(7)).
			WillReturnError(errors.New("Error 1146 (42S02): Table 'school.users' doesn't exist"))

		if _, err := repo.UpdatePassword(context.Background(), 7, "new-password"); err == nil {
			t.Fatal("UpdatePassword() expected error, got nil")
		}
	})
}
