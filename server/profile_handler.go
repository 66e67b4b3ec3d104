package server

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"FitPulse/logger"
	"FitPulse/model"
)

// UpdateProfileRequest carries the mutable profile fields. A zero value means
// "not provided": the stored value is kept, never cleared.
type UpdateProfileRequest struct {
	Name     string  `json:"name"`
	Age      int64   `json:"age"`
	Height   float64 `json:"height"` // centimeters
	Weight   float64 `json:"weight"` // kilograms
	Country  string  `json:"country"`
	DOB      string  `json:"dob"`
	Gender   string  `json:"gender"`
	Diet     string  `json:"diet"`
	Calories int64   `json:"calories"`
}

// profileFeedSize and newsFeedSize bound how many headlines each view shows.
const (
	profileFeedSize = 4
	newsFeedSize    = 20
)

// ProfileHandler returns the user's name with a short headline feed.
func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.upstreamContext(r)
	defer cancel()

	headlines, err := h.news.TopHeadlines(ctx, h.cfg.NewsQuery, h.cfg.NewsCategory)
	if err != nil {
		logger.Warn("[Profile] news feed unavailable", logger.ErrorField(err))
		http.Error(w, "News feed unavailable", http.StatusBadGateway)
		return
	}
	if len(headlines) > profileFeedSize {
		headlines = headlines[:profileFeedSize]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"name": user.Name,
			"feed": headlines,
		},
	})
}

// NewsHandler returns the full headline feed.
func (h *APIHandler) NewsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.upstreamContext(r)
	defer cancel()

	headlines, err := h.news.TopHeadlines(ctx, h.cfg.NewsQuery, h.cfg.NewsCategory)
	if err != nil {
		logger.Warn("[News] news feed unavailable", logger.ErrorField(err))
		http.Error(w, "News feed unavailable", http.StatusBadGateway)
		return
	}
	if len(headlines) > newsFeedSize {
		headlines = headlines[:newsFeedSize]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"name": user.Name,
			"feed": headlines,
		},
	})
}

// AboutHandler returns the full stored profile.
func (h *APIHandler) AboutHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    profileResponse(user),
	})
}

// UpdateProfileHandler merges the request into the stored profile. Absent or
// empty fields keep their stored values. BMI is computed only when none is
// cached yet; a meal plan is fetched only when none is cached yet. A failed
// meal plan fetch aborts the whole update, leaving the row untouched.
func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mergeProfile(user, &req)

	if !user.MealPlan.Valid {
		ctx, cancel := h.upstreamContext(r)
		defer cancel()

		plan, err := h.mealPlanner.Generate(ctx, h.cfg.FoodTimeFrame, user.Calories.Int64, user.Diet.String)
		if err != nil {
			logger.Warn("[UpdateProfile] meal plan fetch failed", logger.ErrorField(err))
			http.Error(w, "Meal plan provider unavailable", http.StatusBadGateway)
			return
		}
		user.MealPlan = sql.NullString{String: string(plan), Valid: true}
	}

	if err := h.userRepo.UpdateProfile(user); err != nil {
		logger.Error("[UpdateProfile] failed to update profile", logger.ErrorField(err))
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	logger.Info("[UpdateProfile] profile updated", logger.String("email", user.Email))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    profileResponse(user),
	})
}

// PlannerHandler returns the cached meal plan blob.
func (h *APIHandler) PlannerHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	if !user.MealPlan.Valid {
		http.Error(w, "No meal plan generated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"mealplan": json.RawMessage(user.MealPlan.String),
	})
}

// currentUser loads the authenticated user's row, writing the error response
// itself when that fails.
func (h *APIHandler) currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	email, err := GetEmailFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	user, err := h.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Error("[Profile] failed to load user", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return nil, false
	}
	return user, true
}

// mergeProfile applies the coalesce-on-missing policy: each provided field
// replaces the stored value, everything else stays. BMI is derived from the
// merged height/weight exactly once; after that it behaves as a cached value
// and is never recomputed, even when height or weight change.
func mergeProfile(user *model.User, req *UpdateProfileRequest) {
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Age > 0 {
		user.Age = sql.NullInt64{Int64: req.Age, Valid: true}
	}
	if req.Height > 0 {
		user.Height = sql.NullFloat64{Float64: req.Height, Valid: true}
	}
	if req.Weight > 0 {
		user.Weight = sql.NullFloat64{Float64: req.Weight, Valid: true}
	}
	if req.Country != "" {
		user.Country = sql.NullString{String: req.Country, Valid: true}
	}
	if req.DOB != "" {
		user.DOB = sql.NullString{String: req.DOB, Valid: true}
	}
	if req.Gender != "" {
		user.Gender = sql.NullString{String: req.Gender, Valid: true}
	}
	if req.Diet != "" {
		user.Diet = sql.NullString{String: req.Diet, Valid: true}
	}
	if req.Calories > 0 {
		user.Calories = sql.NullInt64{Int64: req.Calories, Valid: true}
	}

	if !user.BMI.Valid && user.Height.Valid && user.Weight.Valid && user.Height.Float64 > 0 {
		user.BMI = sql.NullFloat64{
			Float64: computeBMI(user.Weight.Float64, user.Height.Float64),
			Valid:   true,
		}
	}
}

// computeBMI returns weight (kg) over squared height (m).
func computeBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// profileResponse builds the JSON view of a user row, exposing only the
// fields that are set.
func profileResponse(user *model.User) map[string]interface{} {
	profile := map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}

	if user.Age.Valid {
		profile["age"] = user.Age.Int64
	}
	if user.Height.Valid {
		profile["height"] = user.Height.Float64
	}
	if user.Weight.Valid {
		profile["weight"] = user.Weight.Float64
	}
	if user.Country.Valid {
		profile["country"] = user.Country.String
	}
	if user.DOB.Valid {
		profile["dob"] = user.DOB.String
	}
	if user.Gender.Valid {
		profile["gender"] = user.Gender.String
	}
	if user.BMI.Valid {
		profile["bmi"] = user.BMI.Float64
	}
	if user.Diet.Valid {
		profile["diet"] = user.Diet.String
	}
	if user.Calories.Valid {
		profile["calories"] = user.Calories.Int64
	}
	profile["hasMealPlan"] = user.MealPlan.Valid
	profile["createdAt"] = user.CreatedAt
	profile["updatedAt"] = user.UpdatedAt

	return profile
}
