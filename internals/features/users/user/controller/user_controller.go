package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy_backend/internals/features/certificates/certerr"
	"academy_backend/internals/features/users/user/model"
	helper "academy_backend/internals/helpers"
)

type UserSelfController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserSelfController(db *gorm.DB) *UserSelfController {
	return &UserSelfController{DB: db, Validate: validator.New()}
}

// Nama yang dipakai di sertifikat; email & role tidak bisa diubah dari sini.
type UpdateMeRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,max=100"`
	FullNameArabic  *string `json:"full_name_arabic" validate:"omitempty,max=255"`
	FullNameEnglish *string `json:"full_name_english" validate:"omitempty,max=255"`
}

func (ctl *UserSelfController) load(c *fiber.Ctx) (*model.UserModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var user model.UserModel
	err = ctl.DB.WithContext(helper.ReqCtx(c)).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, certerr.NotFound("User not found", "المستخدم غير موجود")
	}
	return &user, err
}

// GET /api/u/users/me
func (ctl *UserSelfController) GetMe(c *fiber.Ctx) error {
	user, err := ctl.load(c)
	if err != nil {
		return certerr.Respond(c, err)
	}
	return helper.JsonOK(c, "ok", user)
}

// PATCH /api/u/users/me
func (ctl *UserSelfController) UpdateMe(c *fiber.Ctx) error {
	user, err := ctl.load(c)
	if err != nil {
		return certerr.Respond(c, err)
	}

	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return certerr.Respond(c, certerr.Validation("Invalid request body", "نص الطلب غير صالح"))
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return certerr.Respond(c, certerr.Validation(err.Error(), "بيانات غير صالحة"))
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		v := strings.TrimSpace(*req.FirstName)
		if v == "" {
			return certerr.Respond(c, certerr.Validation("first_name cannot be empty", "الاسم الأول مطلوب"))
		}
		updates["first_name"] = v
	}
	// string kosong → NULL
	for col, p := range map[string]*string{
		"last_name":         req.LastName,
		"full_name_arabic":  req.FullNameArabic,
		"full_name_english": req.FullNameEnglish,
	} {
		if p == nil {
			continue
		}
		if v := strings.TrimSpace(*p); v != "" {
			updates[col] = v
		} else {
			updates[col] = nil
		}
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Nothing to update", user)
	}

	db := ctl.DB.WithContext(helper.ReqCtx(c))
	if err := db.Model(user).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] update user %s: %v", user.ID, err)
		return certerr.Respond(c, err)
	}
	if err := db.First(user, "id = ?", user.ID).Error; err != nil {
		return certerr.Respond(c, err)
	}
	log.Printf("[INFO] user %s updated names", user.ID)
	return helper.JsonUpdated(c, "Profile updated", user)
}
