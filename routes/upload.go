package routes

import (
	"net/http"

	"maskon/utils"

	"github.com/julienschmidt/httprouter"
)

const maxUploadBytes = 10 << 20

// uploadImages handles POST /api/v1/upload/images. Accepts one or more
// files under the "images" form field and answers with their public
// paths.
func uploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload payload")
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No images provided")
		return
	}

	paths := make([]string, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload payload")
			return
		}
		path, err := utils.SaveImage(file, header, "images")
		file.Close()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
			return
		}
		paths = append(paths, path)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": paths})
}
