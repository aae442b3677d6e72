package products

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

const maxProductForm = 32 << 20 // multipart parse buffer, not the upload cap

// parseProductForm reads the multipart product form: scalar fields, an
// optional serial list, and any image uploads. Uploaded files are pushed
// to the bucket immediately and come back as object keys.
func (prm *ProductRoutesManager) parseProductForm(r *http.Request) (*structs.ProductFields, []string, []string, error) {
	if err := r.ParseMultipartForm(maxProductForm); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse form: %w", err)
	}

	fields := &structs.ProductFields{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if fields.Name == "" {
		return nil, nil, nil, fmt.Errorf("name is required")
	}

	price, err := strconv.ParseUint(r.FormValue("price"), 10, 64)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("price must be a non-negative integer in cents")
	}
	fields.Price = price

	if rawQty := r.FormValue("quantity"); rawQty != "" {
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 0 {
			return nil, nil, nil, fmt.Errorf("quantity must be a non-negative integer")
		}
		fields.Quantity = qty
	}

	categoryID, err := uuid.Parse(r.FormValue("category_id"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("category_id must be a valid id")
	}
	fields.CategoryID = categoryID

	if rawSub := r.FormValue("subcategory_id"); rawSub != "" {
		subID, err := uuid.Parse(rawSub)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("subcategory_id must be a valid id")
		}
		fields.SubcategoryID = &subID
	}

	serials := lib.SplitSerialCSV(r.FormValue("serials"))

	var imageKeys []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			if header.Size > prm.storageService.MaxFileSize() {
				return nil, nil, nil, fmt.Errorf("image %s exceeds the size limit", header.Filename)
			}

			contentType := header.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "image/") {
				return nil, nil, nil, fmt.Errorf("file %s is not an image", header.Filename)
			}

			file, err := header.Open()
			if err != nil {
				return nil, nil, nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
			}

			key, err := prm.storageService.Upload(r.Context(), file, header.Size, contentType)
			file.Close()
			if err != nil {
				return nil, nil, nil, err
			}
			imageKeys = append(imageKeys, key)
		}
	}

	return fields, serials, imageKeys, nil
}

func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	fields, serials, imageKeys, err := prm.parseProductForm(r)
	if err != nil {
		prm.logger.Warn("Invalid product form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	productID, err := prm.productService.Create(r.Context(), fields, serials, imageKeys)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.created"),
		gecho.WithData(map[string]any{"id": productID}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	fields, serials, imageKeys, err := prm.parseProductForm(r)
	if err != nil {
		prm.logger.Warn("Invalid product form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	// A serials field in the form means a full destructive replacement of
	// the serial set; uploads are appended to the existing images.
	replaceSerials := r.Form.Has("serials")

	if err := prm.productService.Update(r.Context(), productID, fields, serials, replaceSerials); err != nil {
		handling.WriteError(w, err)
		return
	}

	if len(imageKeys) > 0 {
		if err := prm.productService.AttachImages(r.Context(), productID, imageKeys); err != nil {
			handling.WriteError(w, err)
			return
		}
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.updated"),
		gecho.WithData(map[string]any{"id": productID}),
		gecho.Send(),
	)
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.products.invalidProductId"), gecho.Send())
		return
	}

	result, err := prm.productService.Delete(r.Context(), productID)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.products.deleted"),
		gecho.WithData(result),
		gecho.Send(),
	)
}
