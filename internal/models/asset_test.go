package models

import (
	"errors"
	"testing"
)

func TestAssetLifecycle(t *testing.T) {
	resetDB(t)

	asset := &DeliverableAsset{
		TaskID:     "staff_bios",
		Type:       AssetImage,
		Name:       "dr-smith.jpg",
		S3Key:      "tasks/staff_bios/abc.jpg",
		S3Bucket:   "vetportal-assets",
		FileSize:   204800,
		MimeType:   "image/jpeg",
		UploadedBy: "1",
	}
	if err := testDB.Assets.Create(asset); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if asset.ID == "" || asset.UploadedAt.IsZero() {
		t.Error("Create should assign id and upload time")
	}

	assets, err := testDB.Assets.ForTask("staff_bios")
	if err != nil {
		t.Fatalf("ForTask failed: %v", err)
	}
	if len(assets) != 1 || assets[0].Status != AssetDraft {
		t.Fatalf("expected one draft asset, got %v", assets)
	}

	if err := testDB.Assets.MarkApproved(asset.ID); err != nil {
		t.Fatalf("MarkApproved failed: %v", err)
	}
	assets, _ = testDB.Assets.ForTask("staff_bios")
	if assets[0].Status != AssetApproved {
		t.Errorf("expected approved, got %s", assets[0].Status)
	}

	if err := testDB.Assets.MarkApproved("nope"); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}
