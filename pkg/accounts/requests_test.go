package accounts

import (
	"encoding/json"
	"testing"
)

func TestStatementRequest_PeriodToken(t *testing.T) {
	tests := []struct {
		period int
		want   string
	}{
		{1, "last1months"},
		{3, "last3months"},
		{12, "last12months"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			req := StatementRequest{Output: OutputJSON, Period: tt.period}
			if got := req.PeriodToken(); got != tt.want {
				t.Errorf("PeriodToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementRequest_PathWithQuery(t *testing.T) {
	req, err := newStatementRequest(OutputPDF, StatementOptions{})
	if err != nil {
		t.Fatalf("newStatementRequest failed: %v", err)
	}

	want := "statement?output=pdf&period=last1months"
	if got := req.PathWithQuery("statement"); got != want {
		t.Errorf("PathWithQuery() = %q, want %q", got, want)
	}
}

func TestTransactionQuery_PathWithQuery(t *testing.T) {
	tests := []struct {
		name  string
		query TransactionQuery
		want  string
	}{
		{
			name:  "defaults only",
			query: TransactionQuery{},
			want:  "transactions?type=credit",
		},
		{
			name:  "zero limit and false paginate are omitted",
			query: TransactionQuery{Limit: 0, Paginate: false, Type: TransactionDebit},
			want:  "transactions?type=debit",
		},
		{
			name:  "narration is query escaped",
			query: TransactionQuery{Narration: "POS Transfer & fees"},
			want:  "transactions?narration=POS+Transfer+%26+fees&type=credit",
		},
		{
			name: "every filter",
			query: TransactionQuery{
				Start:     "05-01-2020",
				End:       "05-02-2020",
				Narration: "salary",
				Limit:     100,
				Type:      TransactionCredit,
				Paginate:  true,
			},
			want: "transactions?end=05-02-2020&limit=100&narration=salary&paginate=true&start=05-01-2020&type=credit",
		},
		{
			name:  "blank strings are omitted",
			query: TransactionQuery{Start: " ", End: "", Narration: "   "},
			want:  "transactions?type=credit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.PathWithQuery("transactions"); got != tt.want {
				t.Errorf("PathWithQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransactionQuery_QueryIsDeterministic(t *testing.T) {
	q := TransactionQuery{Start: "01-01-2021", End: "31-01-2021", Narration: "rent", Limit: 5, Paginate: true}

	first := q.PathWithQuery("transactions")
	for i := 0; i < 20; i++ {
		if got := q.PathWithQuery("transactions"); got != first {
			t.Fatalf("PathWithQuery() changed between calls: %q vs %q", got, first)
		}
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Money
	}{
		{`150000`, 150000},
		{`"150000"`, 150000},
		{`-2500`, -2500},
		{`1999.7`, 2000},
		{`12.75`, 13},
		{`12.4`, 12},
		{`"-2.5"`, -3},
		{`null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var m Money
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if m != tt.want {
				t.Errorf("Money = %d, want %d", m, tt.want)
			}
		})
	}

	var m Money
	if err := json.Unmarshal([]byte(`"ten naira"`), &m); err == nil {
		t.Error("Expected error for a non-numeric amount")
	}
}

func TestMoney_Decimal(t *testing.T) {
	tests := []struct {
		kobo Money
		want string
	}{
		{123456, "1234.56"},
		{5, "0.05"},
		{-100, "-1.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kobo.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status StatementStatus
		want   bool
	}{
		{StatementBuilding, false},
		{StatementComplete, true},
		{StatementFailed, true},
		{StatementStatus("QUEUED"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransaction_ParsedDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantNil bool
		wantErr bool
		wantDay int
	}{
		{name: "rfc3339 millis", date: "2020-06-28T23:00:00.000Z", wantDay: 28},
		{name: "plain date", date: "2020-06-05", wantDay: 5},
		{name: "empty", date: "", wantNil: true},
		{name: "garbage", date: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Date: tt.date}
			got, err := tx.ParsedDate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsedDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected nil date, got %v", got)
				}
				return
			}
			if got.Day() != tt.wantDay {
				t.Errorf("Day = %d, want %d", got.Day(), tt.wantDay)
			}
		})
	}
}
