package fees

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"campusdesk/app/database"
	"campusdesk/app/helpers"
	"campusdesk/app/logger"
	"campusdesk/app/models"
	"campusdesk/app/reports"
	"campusdesk/app/routes/auth"
)

func bindFee(c *fiber.Ctx, f *models.Fee) error {
	var err error
	if f.StudentID, err = helpers.FormInt64(c, "student_id"); err != nil {
		return err
	}
	if f.StudentID == 0 {
		return helpers.BadRequest("Student is required")
	}
	f.Title = helpers.FormString(c, "title")
	if f.Amount, err = helpers.FormFloat(c, "amount", 0); err != nil {
		return err
	}
	if f.DueDate, err = helpers.FormDate(c, "due_date"); err != nil {
		return err
	}
	if status := models.FeeStatus(helpers.FormString(c, "status")); status != "" {
		if !status.Valid() {
			return helpers.BadRequest("Unknown fee status")
		}
		f.Status = status
	}
	return helpers.Validate(f)
}

func CreateFeeAPI(c *fiber.Ctx, db *sqlx.DB) error {
	fee := &models.Fee{}
	if err := bindFee(c, fee); err != nil {
		return renderForm(c, db, fee, err)
	}
	if fee.IsPaid() {
		fee.PaidDate.SetValid(helpers.Today())
	}
	if err := database.CreateFee(db, fee); err != nil {
		return helpers.StoreError(c, err, listPath+"/add")
	}
	return helpers.FlashRedirect(c, "success", "Fee added.", listPath)
}

func UpdateFeeAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	fee, err := database.GetFeeByID(db, id)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	if err := bindFee(c, fee); err != nil {
		return renderForm(c, db, fee, err)
	}
	if err := database.UpdateFee(db, fee); err != nil {
		return helpers.StoreError(c, err, fmt.Sprintf("%s/%d/edit", listPath, id))
	}
	return helpers.FlashRedirect(c, "success", "Fee updated.", listPath)
}

func DeleteFeeAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.DeleteFee(db, id); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return helpers.FlashRedirect(c, "success", "Fee deleted.", listPath)
}

func MarkPaidAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := database.PayFee(db, id, 0, helpers.Today()); err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	logger.L().Info("fee marked paid", zap.Int64("fee_id", id), zap.Int64("by", auth.CurrentUser(c).ID))
	return helpers.FlashRedirect(c, "success", "Fee marked as paid.", listPath)
}

// ownFee loads a fee and hides it from any student it does not belong to.
func ownFee(c *fiber.Ctx, db *sqlx.DB, id int64) (*models.Fee, error) {
	student, err := auth.CurrentStudent(c, db)
	if err != nil {
		return nil, err
	}
	fee, err := database.GetFeeByID(db, id)
	if err != nil {
		return nil, err
	}
	if fee.StudentID != student.ID {
		return nil, database.ErrNotFound
	}
	return fee, nil
}

func PayOwnFeeAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	fee, err := ownFee(c, db, id)
	if err != nil {
		return helpers.StoreError(c, err, "/student/fees")
	}
	if err := database.PayFee(db, fee.ID, fee.StudentID, helpers.Today()); err != nil {
		return helpers.StoreError(c, err, "/student/fees")
	}
	logger.L().Info("fee paid by student", zap.Int64("fee_id", fee.ID), zap.Int64("student_id", fee.StudentID))
	return helpers.FlashRedirect(c, "success", "Payment recorded for "+fee.Title+".", "/student/fees")
}

// ReceiptAPI serves the PDF receipt of a paid fee. Students only reach their own fees.
func ReceiptAPI(c *fiber.Ctx, db *sqlx.DB) error {
	id, err := helpers.ParamID(c, "id")
	if err != nil {
		return err
	}
	back := "/student/fees"
	var fee *models.Fee
	if auth.CurrentUser(c).IsAdmin() {
		back = listPath
		fee, err = database.GetFeeByID(db, id)
	} else {
		fee, err = ownFee(c, db, id)
	}
	if err != nil {
		return helpers.StoreError(c, err, back)
	}
	if !fee.IsPaid() {
		return helpers.FlashRedirect(c, "warning", "A receipt is only available once the fee is paid.", back)
	}

	doc, err := reports.FeeReceipt(fee)
	if err != nil {
		return err
	}
	return reports.SendPDF(c, fmt.Sprintf("receipt_%d.pdf", fee.ID), doc, true)
}

func ExportFeesAPI(c *fiber.Ctx, db *sqlx.DB) error {
	status := models.FeeStatus(c.Query("status"))
	if !status.Valid() {
		status = ""
	}
	list, err := database.ListFees(db, status)
	if err != nil {
		return helpers.StoreError(c, err, listPath)
	}
	return reports.SendCSV(c, "fees.csv", reports.FeesTable(list))
}
