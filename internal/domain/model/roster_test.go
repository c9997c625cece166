package model_test

import (
	"database/sql"
	"testing"

	model "github.com/okian/roster/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	convey.Convey("Given a roster table", t, func() {
		table := model.NewTable(
			model.NewRecord("A", 80, model.StatusPassed),
			model.Record{Name: "B", Status: sql.NullString{String: model.StatusFailed, Valid: true}},
			model.Record{Name: "C", Score: sql.NullFloat64{Float64: 40, Valid: true}},
		)

		convey.Convey("Then it should carry all required columns", func() {
			for _, c := range model.RequiredColumns {
				convey.So(table.HasColumn(c), convey.ShouldBeTrue)
			}
			convey.So(table.HasColumn("grade"), convey.ShouldBeFalse)
			convey.So(table.Len(), convey.ShouldEqual, 3)
		})

		convey.Convey("Then Scores should skip missing values and keep order", func() {
			convey.So(table.Scores(), convey.ShouldResemble, []float64{80, 40})
		})

		convey.Convey("Then it should not report itself normalized", func() {
			convey.So(table.Normalized(), convey.ShouldBeFalse)
		})

		convey.Convey("When cloning the table", func() {
			clone := table.Clone()
			clone.Rows[0].Name = "changed"
			clone.Columns[0] = "changed"

			convey.Convey("Then the original should be untouched", func() {
				convey.So(table.Rows[0].Name, convey.ShouldEqual, "A")
				convey.So(table.Columns[0], convey.ShouldEqual, model.ColumnName)
			})
		})
	})

	convey.Convey("Given a table without missing values", t, func() {
		table := model.NewTable(model.NewRecord("A", 1, model.StatusPassed))

		convey.Convey("Then it should report itself normalized", func() {
			convey.So(table.Normalized(), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty table", t, func() {
		table := model.Table{}

		convey.Convey("Then clone and scores should be empty", func() {
			convey.So(table.Clone().Rows, convey.ShouldBeNil)
			convey.So(table.Scores(), convey.ShouldBeEmpty)
			convey.So(table.Normalized(), convey.ShouldBeTrue)
		})
	})
}
